package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eslsoft/lingualatina/internal/entity"
)

// ErrNotDocument is returned when the payload is valid JSON but not an object.
var ErrNotDocument = errors.New("state document must be a JSON object")

// DecodeOptions configure Decode.
type DecodeOptions struct {
	Now time.Time
}

// Defaults returns a fresh default state.
func Defaults() *entity.AppState {
	return entity.NewAppState()
}

// Encode serializes the state as minified JSON.
func Encode(st *entity.AppState) ([]byte, error) {
	out := *st
	if out.Words == nil {
		out.Words = []entity.Word{}
	}
	if out.Rules == nil {
		out.Rules = []entity.Rule{}
	}
	if out.Idioms == nil {
		out.Idioms = []entity.Idiom{}
	}
	if out.Activity == nil {
		out.Activity = map[string]*entity.ActivityDay{}
	}
	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// ParseObject unmarshals a JSON object into a generic map.
func ParseObject(data []byte) (map[string]any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotDocument
	}
	return obj, nil
}

// Decode parses a state document and deep-merges it onto the defaults.
func Decode(data []byte, opts DecodeOptions) (*entity.AppState, error) {
	raw, err := ParseObject(data)
	if err != nil {
		return nil, err
	}
	return Merge(raw, opts), nil
}

// Merge applies raw fields that have the expected shape onto a default state.
// Collections are taken wholesale when they are arrays; stats and challenges merge key by key.
func Merge(raw map[string]any, opts DecodeOptions) *entity.AppState {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	st := Defaults()
	coerce := CoerceOptions{Now: opts.Now, KeepID: true}

	if items, ok := raw["words"].([]any); ok {
		st.Words = CoerceWords(items, coerce)
	}
	if items, ok := raw["rules"].([]any); ok {
		st.Rules = CoerceRules(items, coerce)
	}
	if items, ok := raw["idioms"].([]any); ok {
		st.Idioms = CoerceIdioms(items, coerce)
	}
	if stats, ok := raw["stats"].(map[string]any); ok {
		mergeStats(&st.Stats, stats)
	}
	if activity, ok := raw["activity"].(map[string]any); ok {
		st.Activity = mergeActivity(activity)
	}
	if goal, ok := counter(raw["goal"]); ok {
		st.Goal = max(goal, 1)
	}
	if n, ok := counter(raw["todayAdded"]); ok {
		st.TodayAdded = n
	}
	if n, ok := counter(raw["streak"]); ok {
		st.Streak = n
	}
	st.LastVisit = dateOrNil(raw["lastVisit"])
	if challenges, ok := raw["challenges"].(map[string]any); ok {
		mergeChallenges(&st.Challenges, challenges)
	}
	return st
}

func mergeStats(dst *entity.Stats, raw map[string]any) {
	fields := map[string]*int{
		"correctAnswers": &dst.CorrectAnswers,
		"quizzesTaken":   &dst.QuizzesTaken,
		"typingCorrect":  &dst.TypingCorrect,
		"xp":             &dst.XP,
		"answerStreak":   &dst.AnswerStreak,
	}
	for key, target := range fields {
		if n, ok := counter(raw[key]); ok {
			*target = n
		}
	}
}

func mergeChallenges(dst *entity.Challenges, raw map[string]any) {
	if n, ok := counter(raw["dailyCorrectTarget"]); ok && n >= 1 {
		dst.DailyCorrectTarget = n
	}
	if v, present := raw["bonusClaimedDate"]; present {
		dst.BonusClaimedDate = dateOrNil(v)
	}
}

func mergeActivity(raw map[string]any) map[string]*entity.ActivityDay {
	out := make(map[string]*entity.ActivityDay, len(raw))
	for date, v := range raw {
		if !validDate(date) {
			continue
		}
		rec, ok := v.(map[string]any)
		if !ok {
			continue
		}
		day := &entity.ActivityDay{}
		if n, ok := counter(rec["wordsAdded"]); ok {
			day.WordsAdded = n
		}
		if n, ok := counter(rec["correct"]); ok {
			day.Correct = n
		}
		out[date] = day
	}
	return out
}

func dateOrNil(v any) *string {
	s, ok := v.(string)
	if !ok || !validDate(s) {
		return nil
	}
	return &s
}

func validDate(s string) bool {
	_, err := time.Parse(entity.DateLayout, s)
	return err == nil
}
