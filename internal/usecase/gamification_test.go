package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/lingualatina/internal/entity"
)

const testDay = "2024-03-10"

func TestMarkCorrectAnswer_XPMonotonic(t *testing.T) {
	st := entity.NewAppState()
	prev := st.Stats.XP
	for i := 0; i < 20; i++ {
		MarkCorrectAnswer(st, testDay)
		require.GreaterOrEqual(t, st.Stats.XP, prev)
		prev = st.Stats.XP
		if i%3 == 0 {
			MarkIncorrectAnswer(st)
			require.Equal(t, prev, st.Stats.XP)
		}
	}
}

func TestMarkCorrectAnswer_StreakBonus(t *testing.T) {
	st := entity.NewAppState()
	st.Challenges.DailyCorrectTarget = 1000

	for i := 0; i < 5; i++ {
		MarkCorrectAnswer(st, testDay)
	}
	assert.Equal(t, 100, st.Stats.XP)

	reward := MarkCorrectAnswer(st, testDay)
	assert.Equal(t, 110, st.Stats.XP)
	assert.Equal(t, Reward{Base: XPPerCorrect}, reward)
}

func TestMarkIncorrectAnswer_ResetsStreakOnly(t *testing.T) {
	st := entity.NewAppState()
	st.Challenges.DailyCorrectTarget = 1000
	for i := 0; i < 4; i++ {
		MarkCorrectAnswer(st, testDay)
	}
	MarkIncorrectAnswer(st)
	assert.Equal(t, 0, st.Stats.AnswerStreak)
	assert.Equal(t, 4, st.Stats.CorrectAnswers)
	assert.Equal(t, 40, st.Stats.XP)

	// the fifth correct answer after a miss is not a streak of five
	MarkCorrectAnswer(st, testDay)
	assert.Equal(t, 50, st.Stats.XP)
}

func TestDailyChallenge_GrantsOncePerDay(t *testing.T) {
	st := entity.NewAppState()
	st.Challenges.DailyCorrectTarget = 2

	first := MarkCorrectAnswer(st, testDay)
	assert.False(t, first.ChallengeDone)
	second := MarkCorrectAnswer(st, testDay)
	assert.True(t, second.ChallengeDone)
	assert.Equal(t, DailyChallengeBonus, second.ChallengeBonus)
	third := MarkCorrectAnswer(st, testDay)
	assert.False(t, third.ChallengeDone)

	assert.Equal(t, 30+DailyChallengeBonus, st.Stats.XP)
	require.NotNil(t, st.Challenges.BonusClaimedDate)
	assert.Equal(t, testDay, *st.Challenges.BonusClaimedDate)
	assert.Equal(t, Challenge{Target: 2, Correct: 3, Claimed: true}, ChallengeStatus(st, testDay))

	// a new day starts counting from zero
	MarkCorrectAnswer(st, "2024-03-11")
	next := MarkCorrectAnswer(st, "2024-03-11")
	assert.True(t, next.ChallengeDone)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1}, {119, 1}, {120, 2}, {240, 3}, {-5, 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Level(tc.xp), "xp=%d", tc.xp)
	}
}

func TestLevelProgressPercent(t *testing.T) {
	assert.Equal(t, 0, LevelProgressPercent(0))
	assert.Equal(t, 50, LevelProgressPercent(60))
	assert.Equal(t, 8, LevelProgressPercent(130))
	assert.Equal(t, 99, LevelProgressPercent(119))
}

func TestAchievements(t *testing.T) {
	st := entity.NewAppState()
	for i := 0; i < 10; i++ {
		st.Words = append(st.Words, entity.Word{Latin: string(rune('a' + i)), Meaning: "m", PartOfSpeech: entity.PartOfSpeechVerb, Learned: i%2 == 0})
	}
	st.Streak = 3
	st.Stats.XP = 480

	byID := map[string]Achievement{}
	for _, a := range Achievements(st) {
		byID[a.ID] = a
	}
	require.Len(t, byID, 12)
	assert.True(t, byID["first_word"].Unlocked)
	assert.True(t, byID["ten_words"].Unlocked)
	assert.False(t, byID["fifty_words"].Unlocked)
	assert.Equal(t, 10, byID["fifty_words"].Progress)
	assert.True(t, byID["streak_3"].Unlocked)
	assert.False(t, byID["streak_7"].Unlocked)
	assert.Equal(t, 5, byID["verb_master"].Progress)
	assert.False(t, byID["verb_master"].Unlocked)
	assert.True(t, byID["level_5"].Unlocked)
	assert.Equal(t, 5, byID["level_5"].Progress)
}
