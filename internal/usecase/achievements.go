package usecase

import (
	"github.com/samber/lo"

	"github.com/eslsoft/lingualatina/internal/entity"
)

// Achievement is a derived, never persisted, milestone.
type Achievement struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Progress int    `json:"progress"`
	Target   int    `json:"target"`
	Unlocked bool   `json:"unlocked"`
}

type achievementRule struct {
	id     string
	title  string
	target int
	metric func(st *entity.AppState) int
}

func wordCount(st *entity.AppState) int { return len(st.Words) }

var achievementRules = []achievementRule{
	{id: "first_word", title: "Primum verbum", target: 1, metric: wordCount},
	{id: "ten_words", title: "Decem verba", target: 10, metric: wordCount},
	{id: "fifty_words", title: "Quinquaginta verba", target: 50, metric: wordCount},
	{id: "hundred_words", title: "Centum verba", target: 100, metric: wordCount},
	{id: "streak_3", title: "Tres dies", target: 3, metric: func(st *entity.AppState) int { return st.Streak }},
	{id: "streak_7", title: "Septimana", target: 7, metric: func(st *entity.AppState) int { return st.Streak }},
	{id: "verb_master", title: "Magister verborum", target: 10, metric: func(st *entity.AppState) int {
		return lo.CountBy(st.Words, func(w entity.Word) bool {
			return w.Learned && w.PartOfSpeech == entity.PartOfSpeechVerb
		})
	}},
	{id: "rule_keeper", title: "Custos regularum", target: 5, metric: func(st *entity.AppState) int { return len(st.Rules) }},
	{id: "idiom_collector", title: "Collector locutionum", target: 5, metric: func(st *entity.AppState) int { return len(st.Idioms) }},
	{id: "sharp_eye", title: "Oculus acer", target: 50, metric: func(st *entity.AppState) int { return st.Stats.CorrectAnswers }},
	{id: "typist", title: "Scriba", target: 25, metric: func(st *entity.AppState) int { return st.Stats.TypingCorrect }},
	{id: "level_5", title: "Gradus quintus", target: 5, metric: func(st *entity.AppState) int { return Level(st.Stats.XP) }},
}

// Achievements evaluates every milestone against the current state.
func Achievements(st *entity.AppState) []Achievement {
	return lo.Map(achievementRules, func(rule achievementRule, _ int) Achievement {
		progress := rule.metric(st)
		return Achievement{
			ID:       rule.id,
			Title:    rule.title,
			Progress: min(progress, rule.target),
			Target:   rule.target,
			Unlocked: progress >= rule.target,
		}
	})
}
