package codec

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eslsoft/lingualatina/internal/entity"
)

// CoerceOptions controls how loose JSON records become entities.
type CoerceOptions struct {
	Now time.Time
	// KeepID keeps a non-empty string id from the record; otherwise a new UUID is assigned.
	KeepID bool
	// Clean is applied to every text field before trimming, when set.
	Clean func(string) string
}

func (o CoerceOptions) text(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	if o.Clean != nil && s != "" {
		s = o.Clean(s)
	}
	return strings.TrimSpace(s)
}

func (o CoerceOptions) id(rec map[string]any) string {
	if o.KeepID {
		if id, ok := rec["id"].(string); ok && strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id)
		}
	}
	return uuid.NewString()
}

func (o CoerceOptions) createdAt(rec map[string]any) int64 {
	if n, ok := number(rec["createdAt"]); ok && n > 0 {
		return millis(n)
	}
	return o.Now.UnixMilli()
}

// CoerceWord converts a loose record, falling back to safe defaults for invalid fields.
func CoerceWord(rec map[string]any, opts CoerceOptions) entity.Word {
	difficulty, _ := rec["difficulty"].(string)
	pos, _ := rec["partOfSpeech"].(string)
	learned, _ := rec["learned"].(bool)
	w := entity.Word{
		ID:           opts.id(rec),
		Latin:        opts.text(rec, "latin"),
		Meaning:      opts.text(rec, "meaning"),
		Example:      opts.text(rec, "example"),
		Difficulty:   entity.ParseDifficulty(difficulty),
		PartOfSpeech: entity.ParsePartOfSpeech(pos),
		Tags:         coerceTags(rec["tags"]),
		Learned:      learned,
		CreatedAt:    opts.createdAt(rec),
	}
	w.Normalize(opts.Now)
	return w
}

func CoerceRule(rec map[string]any, opts CoerceOptions) entity.Rule {
	r := entity.Rule{
		ID:        opts.id(rec),
		Title:     opts.text(rec, "title"),
		Category:  opts.text(rec, "category"),
		Note:      opts.text(rec, "note"),
		CreatedAt: opts.createdAt(rec),
	}
	r.Normalize(opts.Now)
	return r
}

func CoerceIdiom(rec map[string]any, opts CoerceOptions) entity.Idiom {
	i := entity.Idiom{
		ID:        opts.id(rec),
		Latin:     opts.text(rec, "latin"),
		Literal:   opts.text(rec, "literal"),
		Meaning:   opts.text(rec, "meaning"),
		CreatedAt: opts.createdAt(rec),
	}
	i.Normalize(opts.Now)
	return i
}

// CoerceWords maps every object element of a JSON array; other elements are skipped.
func CoerceWords(items []any, opts CoerceOptions) []entity.Word {
	out := make([]entity.Word, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, CoerceWord(rec, opts))
		}
	}
	return out
}

func CoerceRules(items []any, opts CoerceOptions) []entity.Rule {
	out := make([]entity.Rule, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, CoerceRule(rec, opts))
		}
	}
	return out
}

func CoerceIdioms(items []any, opts CoerceOptions) []entity.Idiom {
	out := make([]entity.Idiom, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, CoerceIdiom(rec, opts))
		}
	}
	return out
}

func coerceTags(v any) []string {
	switch tags := v.(type) {
	case []any:
		values := make([]string, 0, len(tags))
		for _, tag := range tags {
			if s, ok := tag.(string); ok {
				values = append(values, s)
			}
		}
		return entity.NormalizeTags(values)
	case string:
		return entity.ParseTags(tags)
	default:
		return []string{}
	}
}

// number accepts finite JSON numbers only.
func number(v any) (float64, bool) {
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func counter(v any) (int, bool) {
	n, ok := number(v)
	if !ok {
		return 0, false
	}
	switch {
	case n < 0:
		return 0, true
	case n >= math.MaxInt:
		return math.MaxInt, true
	}
	return int(n), true
}

// millis saturates n to the int64 range.
func millis(n float64) int64 {
	switch {
	case n >= math.MaxInt64:
		return math.MaxInt64
	case n <= math.MinInt64:
		return math.MinInt64
	}
	return int64(n)
}
