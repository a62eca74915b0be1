package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/lingualatina/internal/adapter/connectrpc"
	"github.com/eslsoft/lingualatina/internal/infrastructure/config"
	"github.com/eslsoft/lingualatina/internal/metrics"
	"github.com/eslsoft/lingualatina/internal/usecase/translate"
)

type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, query string, dir translate.Direction) translate.Result {
	return translate.Result{Query: query, Direction: dir, Source: translate.SourceNone}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	collector.ObserveTranslation("none")

	cfg := &config.Config{Server: config.ServerConfig{CORSOrigins: "http://app.test"}}
	return NewRouter(cfg, logger, reg, connectrpc.Handlers{connectrpc.NewTranslateService(echoTranslator{})})
}

func TestRouter_Endpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lingua_translations_total")

	req := httptest.NewRequest(http.MethodPost, "/"+connectrpc.TranslateServiceName+"/Translate", strings.NewReader(`{"query":"aqua","direction":"la-ru"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"query":"aqua","direction":"la-ru","source":"none"}`, rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/"+connectrpc.TranslateServiceName+"/Translate", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "connect-protocol-version,content-type")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&config.Config{Log: config.LogConfig{Level: "debug", Format: "text"}})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	_, err = NewLogger(&config.Config{Log: config.LogConfig{Level: "loud"}})
	assert.Error(t, err)
	_, err = NewLogger(&config.Config{Log: config.LogConfig{Level: "info", Format: "xml"}})
	assert.Error(t, err)
}

func TestInterceptorLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	InterceptorLogger(logger).Log(context.Background(), logging.LevelWarn, "finished call", "grpc.method", "Check", 42, "ignored")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "finished call", entry.Message)
	assert.Equal(t, "Check", entry.Data["grpc.method"])
	assert.Len(t, entry.Data, 1)
}
