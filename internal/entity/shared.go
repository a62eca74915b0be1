package entity

import (
	"strings"
	"time"
)

// Language represents the two sides of the translator using ISO-style abbreviations.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageLatin       Language = "la"
	LanguageRussian     Language = "ru"
)

// Code returns the lowercase language code (without defaulting).
func (l Language) Code() string {
	return strings.TrimSpace(string(l))
}

// ParseLanguage converts an arbitrary string into a supported Language value.
func ParseLanguage(code string) Language {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "la", "lat", "latin":
		return LanguageLatin
	case "ru", "rus", "russian":
		return LanguageRussian
	default:
		return LanguageUnspecified
	}
}

// NormalizeToken folds a user-entered value for comparisons and dedup keys.
func NormalizeToken(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed)
}

// DateLayout is the calendar-day key format used by the activity ledger.
const DateLayout = "2006-01-02"

// DateKey returns the YYYY-MM-DD key of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// MillisToTime converts an epoch-millisecond timestamp.
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}
