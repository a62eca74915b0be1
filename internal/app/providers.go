package app

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/eslsoft/lingualatina/internal/infrastructure/config"
	"github.com/eslsoft/lingualatina/internal/repository"
	"github.com/eslsoft/lingualatina/internal/usecase"
	"github.com/eslsoft/lingualatina/internal/usecase/backup"
	"github.com/eslsoft/lingualatina/internal/usecase/codec"
	"github.com/eslsoft/lingualatina/internal/usecase/translate"
)

// SessionOptions are appended after the configured ones, so hosts can override them.
type SessionOptions []usecase.SessionOption

// ProvideRegistry returns a registry carrying the Go runtime collectors.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func ProvideCodec(cfg *config.Config, store repository.SlotStore, logger logrus.FieldLogger) (*codec.Codec, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return codec.New(store, logger, codec.WithLocation(loc)), nil
}

func ProvideSession(cfg *config.Config, c *codec.Codec, logger logrus.FieldLogger, recorder usecase.MetricsRecorder, extra SessionOptions) (*usecase.Session, func(), error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	opts := append([]usecase.SessionOption{
		usecase.WithSessionLocation(loc),
		usecase.WithAutoAdvance(usecase.RealScheduler{}, cfg.Practice.AdvanceDelay),
		usecase.WithMetrics(recorder),
	}, extra...)

	session, err := usecase.NewSession(context.Background(), c, logger, opts...)
	if err != nil {
		return nil, nil, err
	}
	return session, session.Close, nil
}

func ProvideBackup(logger logrus.FieldLogger) *backup.Service {
	return backup.NewService(logger)
}

// ProvideTranslator enables the remote provider when translate.enabled is set.
func ProvideTranslator(cfg *config.Config, words translate.Collection, logger logrus.FieldLogger, recorder translate.Recorder) *translate.Service {
	opts := []translate.Option{
		translate.WithTimeout(cfg.Translate.Timeout),
		translate.WithRecorder(recorder),
	}
	if cfg.Translate.Enabled {
		var limiter *rate.Limiter
		if cfg.Translate.Rate > 0 {
			limiter = rate.NewLimiter(rate.Limit(cfg.Translate.Rate), 1)
		}
		client := translate.NewMyMemoryClient(&http.Client{Timeout: cfg.Translate.Timeout}, cfg.Translate.Endpoint, limiter)
		opts = append(opts, translate.WithProvider(client))
	}
	return translate.NewService(words, logger, opts...)
}
