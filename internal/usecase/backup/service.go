package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingualatina/internal/entity"
	"github.com/eslsoft/lingualatina/internal/usecase"
	"github.com/eslsoft/lingualatina/internal/usecase/codec"
)

// ErrMalformedImport is returned when the import document is not usable JSON. The state is left untouched.
var ErrMalformedImport = errors.New("backup: malformed import document")

// Kind names a collection of the state.
type Kind string

const (
	KindWords  Kind = "words"
	KindRules  Kind = "rules"
	KindIdioms Kind = "idioms"
)

var kinds = []Kind{KindWords, KindRules, KindIdioms}

// ParseKind accepts the collection name in any case; unknown names yield false.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindWords, KindRules, KindIdioms:
		return k, true
	default:
		return "", false
	}
}

type ProgressReporter interface {
	StartCollection(kind Kind, total int)
	Increment(kind Kind, delta int)
	FinishCollection(kind Kind)
}

type noopProgress struct{}

func (noopProgress) StartCollection(Kind, int) {}
func (noopProgress) Increment(Kind, int)       {}
func (noopProgress) FinishCollection(Kind)     {}

// ImportResult reports how many records each collection gained.
type ImportResult struct {
	Words    int  `json:"words"`
	Rules    int  `json:"rules"`
	Idioms   int  `json:"idioms"`
	Replaced bool `json:"replaced"`
}

func (r ImportResult) Total() int { return r.Words + r.Rules + r.Idioms }

type Service struct {
	now    func() time.Time
	clean  func(string) string
	logger logrus.FieldLogger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a backup service. Imported text is stripped of markup.
func NewService(logger logrus.FieldLogger, opts ...Option) *Service {
	policy := bluemonday.StrictPolicy()
	svc := &Service{
		now: time.Now,
		clean: func(s string) string {
			return html.UnescapeString(policy.Sanitize(s))
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ImportOption func(*importConfig)

type importConfig struct {
	replace  bool
	kind     Kind
	reporter ProgressReporter
}

// WithReplace switches to the whole-state path: the document replaces the state instead of merging into it.
func WithReplace() ImportOption {
	return func(cfg *importConfig) { cfg.replace = true }
}

// WithImportKind selects the collection a bare array is imported into.
func WithImportKind(kind Kind) ImportOption {
	return func(cfg *importConfig) {
		if kind != "" {
			cfg.kind = kind
		}
	}
}

// WithProgressReporter registers a reporter that receives progress callbacks during import.
func WithProgressReporter(reporter ProgressReporter) ImportOption {
	return func(cfg *importConfig) {
		if reporter != nil {
			cfg.reporter = reporter
		}
	}
}

// Import reads a document from r and merges it into st, or replaces st with WithReplace.
func (s *Service) Import(ctx context.Context, r io.Reader, st *entity.AppState, opts ...ImportOption) (ImportResult, error) {
	cfg := importConfig{kind: KindWords, reporter: noopProgress{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read import: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return ImportResult{}, err
	}
	if cfg.replace {
		return s.replace(data, st, cfg.reporter)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	batches := make(map[Kind][]any, len(kinds))
	switch v := doc.(type) {
	case []any:
		batches[cfg.kind] = v
	case map[string]any:
		for _, kind := range kinds {
			if items, ok := v[string(kind)].([]any); ok {
				batches[kind] = items
			}
		}
	default:
		return ImportResult{}, fmt.Errorf("%w: expected an array or an object", ErrMalformedImport)
	}

	coerce := codec.CoerceOptions{Now: s.now(), Clean: s.clean}
	var result ImportResult
	for _, kind := range kinds {
		items, ok := batches[kind]
		if !ok {
			continue
		}
		cfg.reporter.StartCollection(kind, len(items))
		switch kind {
		case KindWords:
			before := len(st.Words)
			st.Words = usecase.SanitizeWords(append(codec.CoerceWords(items, coerce), st.Words...))
			result.Words = len(st.Words) - before
		case KindRules:
			before := len(st.Rules)
			st.Rules = usecase.SanitizeRules(append(codec.CoerceRules(items, coerce), st.Rules...))
			result.Rules = len(st.Rules) - before
		case KindIdioms:
			before := len(st.Idioms)
			st.Idioms = usecase.SanitizeIdioms(append(codec.CoerceIdioms(items, coerce), st.Idioms...))
			result.Idioms = len(st.Idioms) - before
		}
		cfg.reporter.Increment(kind, len(items))
		cfg.reporter.FinishCollection(kind)
	}

	s.logger.WithFields(logrus.Fields{
		"words":  result.Words,
		"rules":  result.Rules,
		"idioms": result.Idioms,
	}).Info("import merged")
	return result, nil
}

func (s *Service) replace(data []byte, st *entity.AppState, reporter ProgressReporter) (ImportResult, error) {
	next, err := codec.Decode(data, codec.DecodeOptions{Now: s.now()})
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	usecase.SanitizeState(next)

	result := ImportResult{
		Words:    len(next.Words),
		Rules:    len(next.Rules),
		Idioms:   len(next.Idioms),
		Replaced: true,
	}
	counts := map[Kind]int{KindWords: result.Words, KindRules: result.Rules, KindIdioms: result.Idioms}
	for _, kind := range kinds {
		n := counts[kind]
		reporter.StartCollection(kind, n)
		reporter.Increment(kind, n)
		reporter.FinishCollection(kind)
	}
	*st = *next
	s.logger.WithField("words", result.Words).Info("state replaced from import")
	return result, nil
}

// Export writes the full state as indented JSON.
func (s *Service) Export(ctx context.Context, w io.Writer, st *entity.AppState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := codec.Encode(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("indent state: %w", err)
	}
	buf.WriteByte('\n')
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ExportFileName is the suggested file name of a backup taken on date (YYYY-MM-DD).
func ExportFileName(date string) string {
	return "lingua-latina-backup-" + date + ".json"
}
