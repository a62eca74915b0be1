package usecase

import (
	"math"

	"github.com/eslsoft/lingualatina/internal/entity"
)

// Fixed scoring constants.
const (
	XPPerCorrect        = 10
	StreakBonusEvery    = 5
	StreakBonusXP       = 50
	XPPerLevel          = 120
	DailyChallengeBonus = 120
)

// Reward is the XP breakdown of one correct answer.
type Reward struct {
	Base           int  `json:"base"`
	StreakBonus    int  `json:"streakBonus"`
	ChallengeBonus int  `json:"challengeBonus"`
	ChallengeDone  bool `json:"challengeDone"`
}

// Total returns the XP granted.
func (r Reward) Total() int { return r.Base + r.StreakBonus + r.ChallengeBonus }

// MarkCorrectAnswer books a correct answer for today and grants XP.
func MarkCorrectAnswer(st *entity.AppState, today string) Reward {
	NewLedger(st).RecordCorrect(today)
	st.Stats.CorrectAnswers++
	st.Stats.XP += XPPerCorrect
	st.Stats.AnswerStreak++

	reward := Reward{Base: XPPerCorrect}
	if st.Stats.AnswerStreak > 0 && st.Stats.AnswerStreak%StreakBonusEvery == 0 {
		st.Stats.XP += StreakBonusXP
		reward.StreakBonus = StreakBonusXP
	}
	if CheckDailyChallenge(st, today) {
		reward.ChallengeBonus = DailyChallengeBonus
		reward.ChallengeDone = true
	}
	return reward
}

// MarkIncorrectAnswer breaks the answer streak. XP and counters are untouched.
func MarkIncorrectAnswer(st *entity.AppState) {
	st.Stats.AnswerStreak = 0
}

// CheckDailyChallenge grants the daily bonus once the target is reached, at most once per date.
func CheckDailyChallenge(st *entity.AppState, today string) bool {
	target := st.Challenges.DailyCorrectTarget
	if NewLedger(st).CorrectCount(today) < target {
		return false
	}
	if claimed := st.Challenges.BonusClaimedDate; claimed != nil && *claimed == today {
		return false
	}
	date := today
	st.Challenges.BonusClaimedDate = &date
	st.Stats.XP += DailyChallengeBonus
	return true
}

// Level is 1-based: every XPPerLevel points add a level.
func Level(xp int) int {
	return max(xp, 0)/XPPerLevel + 1
}

// LevelProgressPercent is the rounded share of the current level already earned.
func LevelProgressPercent(xp int) int {
	rest := max(xp, 0) % XPPerLevel
	return int(math.Round(float64(rest) / XPPerLevel * 100))
}

// Challenge summarises the daily challenge for a date.
type Challenge struct {
	Target  int  `json:"target"`
	Correct int  `json:"correct"`
	Claimed bool `json:"claimed"`
}

func ChallengeStatus(st *entity.AppState, today string) Challenge {
	claimed := st.Challenges.BonusClaimedDate != nil && *st.Challenges.BonusClaimedDate == today
	return Challenge{
		Target:  st.Challenges.DailyCorrectTarget,
		Correct: NewLedger(st).CorrectCount(today),
		Claimed: claimed,
	}
}
