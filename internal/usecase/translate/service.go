// Package translate answers Russian ⇄ Latin lookups from a bundled glossary,
// a remote provider and the learner's own collection, in that order.
package translate

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingualatina/internal/entity"
)

// DefaultTimeout bounds one remote lookup.
const DefaultTimeout = 4 * time.Second

// Direction names the language pair of a lookup.
type Direction string

const (
	RussianToLatin Direction = "ru-la"
	LatinToRussian Direction = "la-ru"
)

// ParseDirection accepts "ru-la"/"la-ru" and their "ru|la" spellings.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "|", "-") {
	case "", string(RussianToLatin):
		return RussianToLatin, true
	case string(LatinToRussian):
		return LatinToRussian, true
	default:
		return "", false
	}
}

// LangPair is the provider notation, e.g. "ru|la".
func (d Direction) LangPair() string {
	if d == LatinToRussian {
		return entity.LanguageLatin.Code() + "|" + entity.LanguageRussian.Code()
	}
	return entity.LanguageRussian.Code() + "|" + entity.LanguageLatin.Code()
}

// Source tells which step of the chain produced a result.
type Source string

const (
	SourceGlossary Source = "glossary"
	SourceRemote   Source = "remote"
	SourceLocal    Source = "local"
	SourceNone     Source = "none"
)

// Result is the outcome of a lookup. Translation is empty for SourceNone.
type Result struct {
	Query       string    `json:"query"`
	Direction   Direction `json:"direction"`
	Source      Source    `json:"source"`
	Translation string    `json:"translation,omitempty"`
	Variants    []string  `json:"variants,omitempty"`
	WordID      string    `json:"wordId,omitempty"`
}

// Collection provides the learner's words for the local fallback.
type Collection interface {
	Snapshot(ctx context.Context) (*entity.AppState, error)
}

// Recorder counts answered lookups per source.
type Recorder interface {
	ObserveTranslation(source string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveTranslation(string) {}

type Service struct {
	glossary *Glossary
	provider Provider
	words    Collection
	timeout  time.Duration
	logger   logrus.FieldLogger
	recorder Recorder
}

type Option func(*Service)

// WithProvider enables the remote step.
func WithProvider(p Provider) Option {
	return func(s *Service) { s.provider = p }
}

func WithGlossary(g *Glossary) Option {
	return func(s *Service) {
		if g != nil {
			s.glossary = g
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

func NewService(words Collection, logger logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		glossary: DefaultGlossary(),
		words:    words,
		timeout:  DefaultTimeout,
		logger:   logger,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Translate never fails: every unusable step falls through to the next one.
func (s *Service) Translate(ctx context.Context, query string, dir Direction) Result {
	if dir != LatinToRussian {
		dir = RussianToLatin
	}
	res := s.lookup(ctx, strings.TrimSpace(query), dir)
	s.recorder.ObserveTranslation(string(res.Source))
	return res
}

func (s *Service) lookup(ctx context.Context, query string, dir Direction) Result {
	res := Result{Query: query, Direction: dir, Source: SourceNone}
	if entity.NormalizeToken(query) == "" {
		return res
	}

	if v, ok := s.glossary.Lookup(query, dir); ok {
		res.Source, res.Translation = SourceGlossary, v
		return res
	}

	if s.provider != nil {
		rctx, cancel := context.WithTimeout(ctx, s.timeout)
		remote, err := s.provider.Translate(rctx, query, dir)
		cancel()
		if err == nil {
			res.Source, res.Translation, res.Variants = SourceRemote, remote.Translation, remote.Variants
			return res
		}
		s.logger.WithError(err).WithField("query", query).Debug("remote translation unavailable")
	}

	if s.words != nil {
		st, err := s.words.Snapshot(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("local translation fallback unavailable")
			return res
		}
		if w, ok := matchWord(st.Words, query, dir); ok {
			res.Source, res.WordID = SourceLocal, w.ID
			res.Translation = w.Latin
			if dir == LatinToRussian {
				res.Translation = w.Meaning
			}
		}
	}
	return res
}

// matchWord finds the first word whose searched side equals the query, then the first that contains it.
func matchWord(words []entity.Word, query string, dir Direction) (entity.Word, bool) {
	q := entity.NormalizeToken(query)
	side := func(w entity.Word) string {
		if dir == LatinToRussian {
			return entity.NormalizeToken(w.Latin)
		}
		return entity.NormalizeToken(w.Meaning)
	}
	if w, ok := lo.Find(words, func(w entity.Word) bool { return side(w) == q }); ok {
		return w, true
	}
	return lo.Find(words, func(w entity.Word) bool { return strings.Contains(side(w), q) })
}
