package entity

import (
	"strings"
	"time"
)

// Difficulty is the self-assessed difficulty of a word.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty converts an arbitrary string, falling back to medium.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Rank orders difficulties from easy to hard.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyHard:
		return 2
	default:
		return 1
	}
}

// PartOfSpeech classifies a word.
type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "noun"
	PartOfSpeechVerb      PartOfSpeech = "verb"
	PartOfSpeechAdjective PartOfSpeech = "adjective"
	PartOfSpeechAdverb    PartOfSpeech = "adverb"
	PartOfSpeechPhrase    PartOfSpeech = "phrase"
	PartOfSpeechOther     PartOfSpeech = "other"
)

// ParsePartOfSpeech converts an arbitrary string, falling back to other.
func ParsePartOfSpeech(s string) PartOfSpeech {
	switch p := PartOfSpeech(strings.ToLower(strings.TrimSpace(s))); p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb, PartOfSpeechPhrase:
		return p
	default:
		return PartOfSpeechOther
	}
}

// Word is a single vocabulary entry of the personal collection.
type Word struct {
	ID           string       `json:"id"`
	Latin        string       `json:"latin"`
	Meaning      string       `json:"meaning"`
	Example      string       `json:"example"`
	Difficulty   Difficulty   `json:"difficulty"`
	PartOfSpeech PartOfSpeech `json:"partOfSpeech"`
	Tags         []string     `json:"tags"`
	Learned      bool         `json:"learned"`
	CreatedAt    int64        `json:"createdAt"` // epoch milliseconds
}

// Key returns the dedup key of the word.
func (w Word) Key() string {
	return NormalizeToken(w.Latin) + "|" + NormalizeToken(w.Meaning)
}

// Valid reports whether both required fields are present.
func (w Word) Valid() bool {
	return NormalizeToken(w.Latin) != "" && NormalizeToken(w.Meaning) != ""
}

// Normalize ensures defaults & constraints before the word enters the collection.
func (w *Word) Normalize(now time.Time) {
	w.Latin = strings.TrimSpace(w.Latin)
	w.Meaning = strings.TrimSpace(w.Meaning)
	w.Example = strings.TrimSpace(w.Example)
	w.Difficulty = ParseDifficulty(string(w.Difficulty))
	w.PartOfSpeech = ParsePartOfSpeech(string(w.PartOfSpeech))
	w.Tags = NormalizeTags(w.Tags)
	if w.CreatedAt <= 0 {
		w.CreatedAt = now.UnixMilli()
	}
}

// NormalizeTags lowercases, trims and de-duplicates tags, keeping first-seen order.
func NormalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, tag := range in {
		key := NormalizeToken(tag)
		if key == "" {
			continue
		}
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// ParseTags splits comma-separated tag text.
func ParseTags(text string) []string {
	return NormalizeTags(strings.Split(text, ","))
}

// HasTag reports whether the word carries the normalized tag.
func (w Word) HasTag(tag string) bool {
	tag = NormalizeToken(tag)
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
