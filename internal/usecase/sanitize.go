package usecase

import "github.com/eslsoft/lingualatina/internal/entity"

type keyed interface {
	Key() string
	Valid() bool
}

// sanitize keeps the first valid occurrence of every dedup key, preserving order.
func sanitize[T keyed](in []T) []T {
	out := make([]T, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, item := range in {
		if !item.Valid() {
			continue
		}
		key := item.Key()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// SanitizeWords drops words without latin text or meaning and duplicates by latin|meaning.
func SanitizeWords(words []entity.Word) []entity.Word { return sanitize(words) }

// SanitizeRules drops incomplete rules and duplicates by title|category|note.
func SanitizeRules(rules []entity.Rule) []entity.Rule { return sanitize(rules) }

// SanitizeIdioms drops incomplete idioms and duplicates by latin|literal|meaning.
func SanitizeIdioms(idioms []entity.Idiom) []entity.Idiom { return sanitize(idioms) }

// SanitizeState cleans every collection of st in place.
func SanitizeState(st *entity.AppState) {
	st.Words = SanitizeWords(st.Words)
	st.Rules = SanitizeRules(st.Rules)
	st.Idioms = SanitizeIdioms(st.Idioms)
}
