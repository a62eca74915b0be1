package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/lingualatina/internal/entity"
)

func strPtr(s string) *string { return &s }

func TestUpdateStreak(t *testing.T) {
	tests := []struct {
		name      string
		lastVisit *string
		streak    int
		today     string
		want      int
	}{
		{"first visit", nil, 0, "2024-01-01", 1},
		{"next day", strPtr("2024-01-01"), 4, "2024-01-02", 5},
		{"gap", strPtr("2024-01-01"), 4, "2024-01-05", 1},
		{"same day", strPtr("2024-01-02"), 4, "2024-01-02", 4},
		{"clock went back", strPtr("2024-01-05"), 4, "2024-01-02", 4},
		{"garbage", strPtr("yesterday"), 4, "2024-01-02", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := entity.NewAppState()
			st.LastVisit = tc.lastVisit
			st.Streak = tc.streak
			UpdateStreak(st, tc.today, time.UTC)
			assert.Equal(t, tc.want, st.Streak)
			require.NotNil(t, st.LastVisit)
			assert.Equal(t, tc.today, *st.LastVisit)
		})
	}
}

func TestBeginDay(t *testing.T) {
	day := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	st := entity.NewAppState()
	st.Words = []entity.Word{
		{Latin: "amor", Meaning: "любовь", CreatedAt: day.UnixMilli()},
		{Latin: "terra", Meaning: "земля", CreatedAt: day.Add(-24 * time.Hour).UnixMilli()},
	}
	st.LastVisit = strPtr("2024-01-01")
	st.Streak = 2
	st.TodayAdded = 7

	assert.True(t, BeginDay(st, "2024-01-02", time.UTC))
	assert.Equal(t, 3, st.Streak)
	assert.Equal(t, 1, st.TodayAdded)

	// same day again: nothing rolls, the counter is recomputed
	st.TodayAdded = 9
	assert.False(t, BeginDay(st, "2024-01-02", time.UTC))
	assert.Equal(t, 3, st.Streak)
	assert.Equal(t, 1, st.TodayAdded)

	assert.True(t, BeginDay(st, "2024-01-09", time.UTC))
	assert.Equal(t, 1, st.Streak)
	assert.Equal(t, 0, st.TodayAdded)
}

func TestLedger(t *testing.T) {
	st := &entity.AppState{}
	ledger := NewLedger(st)
	require.NotNil(t, st.Activity)

	ledger.RecordWordsAdded("2024-01-01", 3)
	ledger.RecordWordsAdded("2024-01-01", 0)
	ledger.RecordWordRemoved("2024-01-01", 5)
	ledger.RecordCorrect("2024-01-01")
	ledger.RecordCorrect("2024-01-01")

	assert.Equal(t, &entity.ActivityDay{WordsAdded: 0, Correct: 2}, st.Activity["2024-01-01"])
	assert.Equal(t, 2, ledger.CorrectCount("2024-01-01"))
	assert.Equal(t, 0, ledger.CorrectCount("2024-01-02"))
	_, created := st.Activity["2024-01-02"]
	assert.False(t, created)
}

func TestDaysBetween_Floors(t *testing.T) {
	days, ok := daysBetween("2024-01-01", "2024-01-05", time.UTC)
	require.True(t, ok)
	assert.Equal(t, int64(4), days)

	days, ok = daysBetween("2024-01-05", "2024-01-01", time.UTC)
	require.True(t, ok)
	assert.Equal(t, int64(-4), days)

	_, ok = daysBetween("bad", "2024-01-01", time.UTC)
	assert.False(t, ok)
}
