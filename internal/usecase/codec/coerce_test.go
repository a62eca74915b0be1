package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eslsoft/lingualatina/internal/entity"
)

func TestCoerceWord_Defaults(t *testing.T) {
	rec := map[string]any{
		"id":           "keep-me",
		"latin":        "  rosa ",
		"meaning":      "роза",
		"difficulty":   "impossible",
		"partOfSpeech": "Verb",
		"tags":         "Flores, natura ,flores,",
		"learned":      "yes",
	}

	w := CoerceWord(rec, CoerceOptions{Now: fixedNow})
	assert.NotEqual(t, "keep-me", w.ID)
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "rosa", w.Latin)
	assert.Equal(t, entity.DifficultyMedium, w.Difficulty)
	assert.Equal(t, entity.PartOfSpeechVerb, w.PartOfSpeech)
	assert.Equal(t, []string{"flores", "natura"}, w.Tags)
	assert.False(t, w.Learned)
	assert.Equal(t, fixedNow.UnixMilli(), w.CreatedAt)
}

func TestCoerceWord_KeepIDAndArrayTags(t *testing.T) {
	rec := map[string]any{
		"id":        "w-1",
		"latin":     "lupus",
		"meaning":   "волк",
		"tags":      []any{"Animalia", 3, "animalia"},
		"createdAt": float64(1700000000000),
	}

	w := CoerceWord(rec, CoerceOptions{Now: fixedNow, KeepID: true})
	assert.Equal(t, "w-1", w.ID)
	assert.Equal(t, []string{"animalia"}, w.Tags)
	assert.Equal(t, int64(1700000000000), w.CreatedAt)
}

func TestCoerceWord_CleanHook(t *testing.T) {
	rec := map[string]any{"latin": "<b>amo</b>", "meaning": "люблю"}
	clean := func(s string) string { return strings.NewReplacer("<b>", "", "</b>", "").Replace(s) }

	w := CoerceWord(rec, CoerceOptions{Now: fixedNow, Clean: clean})
	assert.Equal(t, "amo", w.Latin)
}

func TestCoerceWords_SkipsNonObjects(t *testing.T) {
	items := []any{"amor", map[string]any{"latin": "amor", "meaning": "любовь"}, nil}
	words := CoerceWords(items, CoerceOptions{Now: fixedNow})
	assert.Len(t, words, 1)
}

func TestCoerceRuleAndIdiom(t *testing.T) {
	r := CoerceRule(map[string]any{"title": " Ablativus ", "category": "casus", "note": "cum + abl."}, CoerceOptions{Now: fixedNow})
	assert.Equal(t, "Ablativus", r.Title)
	assert.True(t, r.Valid())

	i := CoerceIdiom(map[string]any{"latin": "alea iacta est", "literal": 42}, CoerceOptions{Now: fixedNow})
	assert.Empty(t, i.Literal)
	assert.False(t, i.Valid())
}
