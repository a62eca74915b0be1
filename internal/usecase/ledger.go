package usecase

import (
	"time"

	"github.com/eslsoft/lingualatina/internal/entity"
)

const dayMillis = 86_400_000

// Ledger records per-day activity counters on the state it wraps.
type Ledger struct {
	st *entity.AppState
}

func NewLedger(st *entity.AppState) Ledger {
	if st.Activity == nil {
		st.Activity = map[string]*entity.ActivityDay{}
	}
	return Ledger{st: st}
}

// EnsureDay returns the day record, creating a zeroed one when absent.
func (l Ledger) EnsureDay(date string) *entity.ActivityDay {
	day, ok := l.st.Activity[date]
	if !ok || day == nil {
		day = &entity.ActivityDay{}
		l.st.Activity[date] = day
	}
	return day
}

func (l Ledger) RecordWordsAdded(date string, count int) {
	if count <= 0 {
		return
	}
	l.EnsureDay(date).WordsAdded += count
}

// RecordWordRemoved decrements wordsAdded, never below zero.
func (l Ledger) RecordWordRemoved(date string, count int) {
	day := l.EnsureDay(date)
	day.WordsAdded = max(day.WordsAdded-count, 0)
}

func (l Ledger) RecordCorrect(date string) {
	l.EnsureDay(date).Correct++
}

func (l Ledger) CorrectCount(date string) int {
	if day, ok := l.st.Activity[date]; ok && day != nil {
		return day.Correct
	}
	return 0
}

// RecomputeTodayAdded sets todayAdded to the number of words created on today's local date.
func RecomputeTodayAdded(st *entity.AppState, today string, loc *time.Location) {
	n := 0
	for _, w := range st.Words {
		if entity.DateKey(entity.MillisToTime(w.CreatedAt), loc) == today {
			n++
		}
	}
	st.TodayAdded = n
}

// daysBetween floors the millisecond gap between two local-midnight dates.
// Across a DST change the gap is 23 or 25 hours, which this deliberately does not correct.
func daysBetween(from, to string, loc *time.Location) (int64, bool) {
	diff, ok := millisBetween(from, to, loc)
	if !ok {
		return 0, false
	}
	days := diff / dayMillis
	if diff < 0 && diff%dayMillis != 0 {
		days--
	}
	return days, true
}

// UpdateStreak advances, restarts or keeps the visit streak and stamps lastVisit.
func UpdateStreak(st *entity.AppState, today string, loc *time.Location) {
	if st.LastVisit == nil {
		st.Streak = 1
	} else if diff, ok := daysBetween(*st.LastVisit, today, loc); !ok {
		st.Streak = 1
	} else {
		switch {
		case diff == 1:
			st.Streak++
		case diff > 1:
			st.Streak = 1
		}
	}
	visit := today
	st.LastVisit = &visit
}

// BeginDay runs the start-of-session bookkeeping when the calendar day changed since the last visit.
// It returns true when lastVisit was advanced.
func BeginDay(st *entity.AppState, today string, loc *time.Location) bool {
	changed := false
	if st.LastVisit == nil || *st.LastVisit != today {
		if st.LastVisit == nil {
			st.TodayAdded = 0
		} else if gap, ok := millisBetween(*st.LastVisit, today, loc); !ok || gap > dayMillis {
			st.TodayAdded = 0
		}
		UpdateStreak(st, today, loc)
		changed = true
	}
	RecomputeTodayAdded(st, today, loc)
	return changed
}

func millisBetween(from, to string, loc *time.Location) (int64, bool) {
	a, err := time.ParseInLocation(entity.DateLayout, from, loc)
	if err != nil {
		return 0, false
	}
	b, err := time.ParseInLocation(entity.DateLayout, to, loc)
	if err != nil {
		return 0, false
	}
	return b.UnixMilli() - a.UnixMilli(), true
}
