package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveAnswer(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveAnswer("quiz", true, 60)
	c.ObserveAnswer("quiz", false, 0)
	c.ObserveAnswer("typing", true, 10)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.answers.WithLabelValues("quiz", "correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.answers.WithLabelValues("quiz", "incorrect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.answers.WithLabelValues("typing", "correct")))
	assert.Equal(t, 70.0, testutil.ToFloat64(c.xp))
}

func TestCollector_GaugesAndTranslations(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.SetCollectionSize("words", 12)
	c.SetCollectionSize("words", 11)
	c.ObserveTranslation("glossary")
	c.ObserveTranslation("glossary")

	assert.Equal(t, 11.0, testutil.ToFloat64(c.collections.WithLabelValues("words")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.translations.WithLabelValues("glossary")))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveTranslation("remote")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `lingua_translations_total{source="remote"} 1`)
}
