package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMyMemoryServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ru|la", r.URL.Query().Get("langpair"))
		assert.NotEmpty(t, r.URL.Query().Get("q"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMyMemoryClient_Translate(t *testing.T) {
	srv := newMyMemoryServer(t, http.StatusOK, `{
		"responseData": {"translatedText": "Canis"},
		"matches": [
			{"translation": "canis"},
			{"translation": " catulus "},
			{"translation": "собака"},
			{"translation": "Catulus"},
			{"translation": ""}
		]
	}`)

	client := NewMyMemoryClient(srv.Client(), srv.URL, nil)
	got, err := client.Translate(context.Background(), "собака", RussianToLatin)
	require.NoError(t, err)
	assert.Equal(t, "Canis", got.Translation)
	assert.Equal(t, []string{"catulus"}, got.Variants)
}

func TestMyMemoryClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		noHit  bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "bad json", status: http.StatusOK, body: `not json`},
		{name: "empty translation", status: http.StatusOK, body: `{"responseData":{"translatedText":"  "}}`, noHit: true},
		{name: "echo", status: http.StatusOK, body: `{"responseData":{"translatedText":"Собака"}}`, noHit: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newMyMemoryServer(t, tt.status, tt.body)
			client := NewMyMemoryClient(srv.Client(), srv.URL, nil)
			_, err := client.Translate(context.Background(), "собака", RussianToLatin)
			require.Error(t, err)
			assert.Equal(t, tt.noHit, errors.Is(err, ErrNoTranslation))
		})
	}
}

func TestDirection(t *testing.T) {
	d, ok := ParseDirection("LA|RU")
	require.True(t, ok)
	assert.Equal(t, LatinToRussian, d)
	assert.Equal(t, "la|ru", d.LangPair())

	d, ok = ParseDirection("")
	require.True(t, ok)
	assert.Equal(t, RussianToLatin, d)
	assert.Equal(t, "ru|la", d.LangPair())

	_, ok = ParseDirection("de-la")
	assert.False(t, ok)
}
