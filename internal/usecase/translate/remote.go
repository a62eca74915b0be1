package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"github.com/eslsoft/lingualatina/internal/entity"
)

// DefaultEndpoint is the public MyMemory translation API.
const DefaultEndpoint = "https://api.mymemory.translated.net/get"

// ErrNoTranslation is returned when the provider answered without a usable translation.
var ErrNoTranslation = errors.New("translate: no usable translation")

// Remote is a provider answer: the best guess plus alternative variants.
type Remote struct {
	Translation string
	Variants    []string
}

// Provider looks a query up in an external service.
type Provider interface {
	Translate(ctx context.Context, query string, dir Direction) (Remote, error)
}

// MyMemoryClient talks to a MyMemory-compatible endpoint.
type MyMemoryClient struct {
	httpClient *http.Client
	endpoint   string
	limiter    *rate.Limiter
}

// NewMyMemoryClient returns a client for endpoint. A nil limiter disables pacing.
func NewMyMemoryClient(httpClient *http.Client, endpoint string, limiter *rate.Limiter) *MyMemoryClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &MyMemoryClient{httpClient: httpClient, endpoint: endpoint, limiter: limiter}
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	Matches []myMemoryMatch `json:"matches"`
}

type myMemoryMatch struct {
	Translation string `json:"translation"`
}

func (c *MyMemoryClient) Translate(ctx context.Context, query string, dir Direction) (Remote, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Remote{}, fmt.Errorf("translate: rate limit: %w", err)
		}
	}

	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return Remote{}, fmt.Errorf("translate: parse endpoint: %w", err)
	}
	q := reqURL.Query()
	q.Set("q", query)
	q.Set("langpair", dir.LangPair())
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return Remote{}, fmt.Errorf("translate: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Remote{}, fmt.Errorf("translate: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Remote{}, fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Remote{}, fmt.Errorf("translate: read body: %w", err)
	}
	var payload myMemoryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Remote{}, fmt.Errorf("translate: decode body: %w", err)
	}

	best := strings.TrimSpace(payload.ResponseData.TranslatedText)
	if best == "" || entity.NormalizeToken(best) == entity.NormalizeToken(query) {
		return Remote{}, ErrNoTranslation
	}

	seen := map[string]struct{}{
		entity.NormalizeToken(best):  {},
		entity.NormalizeToken(query): {},
	}
	variants := lo.FilterMap(payload.Matches, func(m myMemoryMatch, _ int) (string, bool) {
		v := strings.TrimSpace(m.Translation)
		key := entity.NormalizeToken(v)
		if key == "" {
			return "", false
		}
		if _, dup := seen[key]; dup {
			return "", false
		}
		seen[key] = struct{}{}
		return v, true
	})
	return Remote{Translation: best, Variants: variants}, nil
}
