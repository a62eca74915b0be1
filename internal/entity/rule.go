package entity

import (
	"strings"
	"time"
)

// Rule is a grammar note kept next to the vocabulary.
type Rule struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Note      string `json:"note"`
	CreatedAt int64  `json:"createdAt"`
}

func (r Rule) Key() string {
	return NormalizeToken(r.Title) + "|" + NormalizeToken(r.Category) + "|" + NormalizeToken(r.Note)
}

func (r Rule) Valid() bool {
	return NormalizeToken(r.Title) != "" && NormalizeToken(r.Category) != "" && NormalizeToken(r.Note) != ""
}

func (r *Rule) Normalize(now time.Time) {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Note = strings.TrimSpace(r.Note)
	if r.CreatedAt <= 0 {
		r.CreatedAt = now.UnixMilli()
	}
}

// Idiom is a set phrase with its literal and idiomatic translations.
type Idiom struct {
	ID        string `json:"id"`
	Latin     string `json:"latin"`
	Literal   string `json:"literal"`
	Meaning   string `json:"meaning"`
	CreatedAt int64  `json:"createdAt"`
}

func (i Idiom) Key() string {
	return NormalizeToken(i.Latin) + "|" + NormalizeToken(i.Literal) + "|" + NormalizeToken(i.Meaning)
}

func (i Idiom) Valid() bool {
	return NormalizeToken(i.Latin) != "" && NormalizeToken(i.Literal) != "" && NormalizeToken(i.Meaning) != ""
}

func (i *Idiom) Normalize(now time.Time) {
	i.Latin = strings.TrimSpace(i.Latin)
	i.Literal = strings.TrimSpace(i.Literal)
	i.Meaning = strings.TrimSpace(i.Meaning)
	if i.CreatedAt <= 0 {
		i.CreatedAt = now.UnixMilli()
	}
}
