package translate

import "github.com/eslsoft/lingualatina/internal/entity"

// bundled Russian → Latin terms; the reverse table is derived.
var ruToLa = map[string]string{
	"привет":      "salve",
	"здравствуй":  "salve",
	"до свидания": "vale",
	"спасибо":     "gratias",
	"пожалуйста":  "quaeso",
	"да":          "ita",
	"нет":         "non",
	"вода":        "aqua",
	"земля":       "terra",
	"огонь":       "ignis",
	"воздух":      "aer",
	"любовь":      "amor",
	"мир":         "pax",
	"война":       "bellum",
	"друг":        "amicus",
	"книга":       "liber",
	"солнце":      "sol",
	"луна":        "luna",
	"свет":        "lux",
	"день":        "dies",
	"ночь":        "nox",
	"жизнь":       "vita",
	"смерть":      "mors",
	"время":       "tempus",
	"человек":     "homo",
	"город":       "urbs",
	"дорога":      "via",
	"слово":       "verbum",
	"истина":      "veritas",
	"мудрость":    "sapientia",
}

// Glossary is a fixed two-way term table.
type Glossary struct {
	forward  map[string]string
	backward map[string]string
}

// NewGlossary builds a glossary from Russian → Latin pairs. Keys are normalized.
func NewGlossary(pairs map[string]string) *Glossary {
	g := &Glossary{
		forward:  make(map[string]string, len(pairs)),
		backward: make(map[string]string, len(pairs)),
	}
	for ru, la := range pairs {
		ru, la = entity.NormalizeToken(ru), entity.NormalizeToken(la)
		if ru == "" || la == "" {
			continue
		}
		g.forward[ru] = la
		// synonyms share a Latin word: keep the shortest Russian term so the reverse lookup is stable
		if prev, ok := g.backward[la]; !ok || len(ru) < len(prev) || (len(ru) == len(prev) && ru < prev) {
			g.backward[la] = ru
		}
	}
	return g
}

// DefaultGlossary returns the bundled term table.
func DefaultGlossary() *Glossary { return NewGlossary(ruToLa) }

// Lookup returns the bundled translation of query.
func (g *Glossary) Lookup(query string, dir Direction) (string, bool) {
	table := g.forward
	if dir == LatinToRussian {
		table = g.backward
	}
	v, ok := table[entity.NormalizeToken(query)]
	return v, ok
}
