//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingualatina/internal/adapter/connectrpc"
	"github.com/eslsoft/lingualatina/internal/infrastructure/config"
	"github.com/eslsoft/lingualatina/internal/infrastructure/database"
	"github.com/eslsoft/lingualatina/internal/infrastructure/server"
	"github.com/eslsoft/lingualatina/internal/metrics"
	"github.com/eslsoft/lingualatina/internal/usecase"
	"github.com/eslsoft/lingualatina/internal/usecase/translate"
)

var configSet = wire.NewSet(
	config.Load,
)

var loggerSet = wire.NewSet(
	server.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var storageSet = wire.NewSet(
	database.NewSlotStore,
	ProvideCodec,
)

var metricsSet = wire.NewSet(
	ProvideRegistry,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	metrics.NewCollector,
	wire.Bind(new(usecase.MetricsRecorder), new(*metrics.Collector)),
	wire.Bind(new(translate.Recorder), new(*metrics.Collector)),
)

var usecaseSet = wire.NewSet(
	ProvideSession,
	ProvideBackup,
	ProvideTranslator,
	wire.Bind(new(translate.Collection), new(*usecase.Session)),
)

var serviceSet = wire.NewSet(
	connectrpc.NewCollectionService,
	connectrpc.NewPracticeService,
	connectrpc.NewProgressService,
	connectrpc.NewTranslateService,
	connectrpc.NewHandlers,
	wire.Bind(new(connectrpc.CollectionUsecase), new(*usecase.Session)),
	wire.Bind(new(connectrpc.PracticeUsecase), new(*usecase.Session)),
	wire.Bind(new(connectrpc.ProgressUsecase), new(*usecase.Session)),
	wire.Bind(new(connectrpc.Translator), new(*translate.Service)),
)

var serverSet = wire.NewSet(
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize(extra SessionOptions) (*Container, func(), error) {
	wire.Build(
		configSet,
		loggerSet,
		storageSet,
		metricsSet,
		usecaseSet,
		serviceSet,
		serverSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
