package entity

import (
	"testing"
	"time"
)

func TestWordNormalize(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	w := Word{
		Latin:        "  Aqua ",
		Meaning:      " вода",
		Difficulty:   "HARD",
		PartOfSpeech: "pronoun",
		Tags:         []string{" Nature", "nature", "", "water"},
	}
	w.Normalize(now)

	if w.Latin != "Aqua" || w.Meaning != "вода" {
		t.Fatalf("text not trimmed: %+v", w)
	}
	if w.Difficulty != DifficultyHard || w.PartOfSpeech != PartOfSpeechOther {
		t.Fatalf("bad enums: %q %q", w.Difficulty, w.PartOfSpeech)
	}
	if len(w.Tags) != 2 || w.Tags[0] != "nature" || w.Tags[1] != "water" {
		t.Fatalf("bad tags: %v", w.Tags)
	}
	if w.CreatedAt != now.UnixMilli() {
		t.Fatalf("createdAt = %d", w.CreatedAt)
	}
	if w.Key() != (Word{Latin: "aqua", Meaning: "ВОДА"}).Key() {
		t.Fatalf("keys should fold case: %q", w.Key())
	}
	if (Word{Latin: "aqua", Meaning: "  "}).Valid() {
		t.Fatal("blank meaning must be invalid")
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags("Food, drink,,food ")
	if len(got) != 2 || got[0] != "food" || got[1] != "drink" {
		t.Fatalf("got %v", got)
	}
}

func TestAppStateClone(t *testing.T) {
	visit := "2024-03-10"
	st := NewAppState()
	st.Words = append(st.Words, Word{ID: "w1", Tags: []string{"a"}})
	st.Activity[visit] = &ActivityDay{WordsAdded: 1}
	st.LastVisit = &visit

	cp := st.Clone()
	cp.Words[0].Tags[0] = "b"
	cp.Activity[visit].WordsAdded = 9
	*cp.LastVisit = "2024-03-11"

	if st.Words[0].Tags[0] != "a" || st.Activity[visit].WordsAdded != 1 || *st.LastVisit != visit {
		t.Fatalf("clone shares memory with the original: %+v", st)
	}
}

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{"LA": LanguageLatin, "russian": LanguageRussian, "de": LanguageUnspecified}
	for in, want := range cases {
		if got := ParseLanguage(in); got != want {
			t.Fatalf("ParseLanguage(%q) = %q want %q", in, got, want)
		}
	}
}
