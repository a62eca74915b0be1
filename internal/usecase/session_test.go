package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/lingualatina/internal/entity"
	"github.com/eslsoft/lingualatina/internal/repository"
	"github.com/eslsoft/lingualatina/internal/usecase/codec"
)

type memSlots struct {
	mu     sync.Mutex
	slots  map[string][]byte
	putErr error
	puts   int
}

func newMemSlots() *memSlots { return &memSlots{slots: map[string][]byte{}} }

func (m *memSlots) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	if !ok {
		return nil, repository.ErrSlotNotFound
	}
	return v, nil
}

func (m *memSlots) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *memSlots) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualScheduler struct{ timers []*manualTimer }

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// fire runs every callback that was not stopped.
func (s *manualScheduler) fire() {
	pending := s.timers
	s.timers = nil
	for _, t := range pending {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

type recordingQuizView struct {
	questions []QuizQuestion
	results   []QuizGrade
	messages  []string
}

func (v *recordingQuizView) ShowUnavailable(message string) { v.messages = append(v.messages, message) }
func (v *recordingQuizView) ShowQuestion(q QuizQuestion)    { v.questions = append(v.questions, q) }
func (v *recordingQuizView) ShowResult(g QuizGrade)         { v.results = append(v.results, g) }

type harness struct {
	session *Session
	store   *memSlots
	clock   *testClock
	sched   *manualScheduler
	quiz    *recordingQuizView
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store: newMemSlots(),
		clock: &testClock{t: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)},
		sched: &manualScheduler{},
		quiz:  &recordingQuizView{},
	}
	logger, _ := test.NewNullLogger()
	c := codec.New(h.store, logger, codec.WithClock(h.clock.now), codec.WithLocation(time.UTC))
	s, err := NewSession(context.Background(), c, logger,
		WithSessionClock(h.clock.now),
		WithSessionLocation(time.UTC),
		WithRandomizer(testRand()),
		WithAutoAdvance(h.sched, DefaultAdvanceDelay),
		WithView(PracticeView{Quiz: h.quiz}),
	)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	h.session = s
	return h
}

func (h *harness) addWords(t *testing.T, pairs ...string) {
	t.Helper()
	for i := 0; i+1 < len(pairs); i += 2 {
		_, err := h.session.AddWord(context.Background(), entity.Word{Latin: pairs[i], Meaning: pairs[i+1]})
		require.NoError(t, err)
	}
}

func (h *harness) correctMeaning(t *testing.T, prompt string) string {
	t.Helper()
	st, err := h.session.Snapshot(context.Background())
	require.NoError(t, err)
	w := wordByLatin(st.Words, prompt)
	require.NotEmpty(t, w.ID, "prompt %q not in collection", prompt)
	return w.Meaning
}

func TestSession_Scenario(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	q, err := h.session.NextQuiz(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateUnavailable, q.State)

	h.addWords(t, "amor", "любовь", "terra", "земля", "aqua", "вода", "ignis", "огонь")

	q, err = h.session.NextQuiz(ctx)
	require.NoError(t, err)
	require.Equal(t, StateReady, q.State)
	require.Len(t, q.Options, 4)

	grade, ok, err := h.session.AnswerQuiz(ctx, q.Generation, h.correctMeaning(t, q.Prompt))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, grade.Correct)

	st, err := h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Stats.CorrectAnswers)
	assert.Equal(t, 10, st.Stats.XP)
	assert.Equal(t, 1, st.Stats.QuizzesTaken)
	assert.Equal(t, 4, st.TodayAdded)
	assert.Equal(t, &entity.ActivityDay{WordsAdded: 4, Correct: 1}, st.Activity["2024-03-10"])

	// persisted
	saved, err := codec.Decode(h.store.slots[codec.CurrentKey], codec.DecodeOptions{Now: h.clock.now()})
	require.NoError(t, err)
	assert.Equal(t, 10, saved.Stats.XP)
	assert.Len(t, saved.Words, 4)
}

func TestSession_QuizBecomesReadyWhenCollectionGrows(t *testing.T) {
	h := newHarness(t)
	h.addWords(t, "amor", "любовь", "terra", "земля", "aqua", "вода")
	require.NotEmpty(t, h.quiz.messages)
	assert.Empty(t, h.quiz.questions)

	h.addWords(t, "ignis", "огонь")
	require.NotEmpty(t, h.quiz.questions)
	assert.Equal(t, StateReady, h.quiz.questions[len(h.quiz.questions)-1].State)
}

func TestSession_AddWordRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addWords(t, "aqua", "вода")

	_, err := h.session.AddWord(ctx, entity.Word{Latin: " Aqua", Meaning: "ВОДА "})
	assert.ErrorIs(t, err, entity.ErrDuplicateWord)
	_, err = h.session.AddWord(ctx, entity.Word{Latin: "aqua"})
	assert.ErrorIs(t, err, entity.ErrInvalidWord)

	st, err := h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Words, 1)
	assert.Equal(t, 1, st.Activity["2024-03-10"].WordsAdded)
}

func TestSession_FailedSaveLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.store.putErr = errors.New("disk full")

	_, err := h.session.AddWord(ctx, entity.Word{Latin: "aqua", Meaning: "вода"})
	require.Error(t, err)

	h.store.putErr = nil
	st, err := h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.Words)

	h.addWords(t, "amor", "любовь", "terra", "земля", "aqua", "вода", "ignis", "огонь")
	q, err := h.session.NextQuiz(ctx)
	require.NoError(t, err)
	require.Equal(t, StateReady, q.State)
	p, err := h.session.NextTyping(ctx)
	require.NoError(t, err)
	require.Equal(t, StateReady, p.State)

	h.store.putErr = errors.New("disk full")
	_, ok, err := h.session.AnswerQuiz(ctx, q.Generation, h.correctMeaning(t, q.Prompt))
	require.Error(t, err)
	assert.False(t, ok)
	_, ok, err = h.session.SubmitTyping(ctx, p.Generation, h.correctMeaning(t, p.Prompt))
	require.Error(t, err)
	assert.False(t, ok)
	assert.Empty(t, h.sched.timers)

	h.store.putErr = nil
	_, ok, err = h.session.AnswerQuiz(ctx, q.Generation, h.correctMeaning(t, q.Prompt))
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = h.session.SubmitTyping(ctx, p.Generation, h.correctMeaning(t, p.Prompt))
	require.NoError(t, err)
	assert.True(t, ok)

	st, err = h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Stats.QuizzesTaken)
	assert.Equal(t, 1, st.Stats.TypingCorrect)
	assert.Equal(t, 2, st.Stats.CorrectAnswers)
	assert.Len(t, h.sched.timers, 2)
}

func TestSession_RemoveWordUpdatesLedger(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addWords(t, "aqua", "вода", "terra", "земля")

	st, err := h.session.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, h.session.RemoveWord(ctx, st.Words[0].ID))
	assert.ErrorIs(t, h.session.RemoveWord(ctx, "missing"), entity.ErrWordNotFound)

	st, err = h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Words, 1)
	assert.Equal(t, 1, st.TodayAdded)
	assert.Equal(t, 1, st.Activity["2024-03-10"].WordsAdded)
}

func TestSession_ToggleAndUpdateWord(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addWords(t, "aqua", "вода", "terra", "земля")
	st, err := h.session.Snapshot(ctx)
	require.NoError(t, err)
	terra := st.Words[0]

	w, err := h.session.ToggleLearned(ctx, terra.ID)
	require.NoError(t, err)
	assert.True(t, w.Learned)

	w, err = h.session.UpdateWord(ctx, entity.Word{ID: terra.ID, Latin: "terra", Meaning: "земля, почва", Difficulty: "hard", Tags: []string{"Nature"}})
	require.NoError(t, err)
	assert.True(t, w.Learned)
	assert.Equal(t, terra.CreatedAt, w.CreatedAt)
	assert.Equal(t, entity.DifficultyHard, w.Difficulty)
	assert.Equal(t, []string{"nature"}, w.Tags)

	_, err = h.session.UpdateWord(ctx, entity.Word{ID: terra.ID, Latin: "AQUA", Meaning: "вода"})
	assert.ErrorIs(t, err, entity.ErrDuplicateWord)
	_, err = h.session.UpdateWord(ctx, entity.Word{ID: "missing", Latin: "x", Meaning: "y"})
	assert.ErrorIs(t, err, entity.ErrWordNotFound)
}

func TestSession_AutoAdvance(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addWords(t, "amor", "любовь", "terra", "земля", "aqua", "вода", "ignis", "огонь")

	q, err := h.session.NextQuiz(ctx)
	require.NoError(t, err)
	_, ok, err := h.session.AnswerQuiz(ctx, 0, "не то")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, h.sched.timers, 1)
	assert.Equal(t, DefaultAdvanceDelay, h.sched.timers[0].d)

	// answering again before the advance is ignored
	_, ok, err = h.session.AnswerQuiz(ctx, 0, "не то")
	require.NoError(t, err)
	assert.False(t, ok)

	h.sched.fire()
	st, err := h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Stats.QuizzesTaken)

	last := h.quiz.questions[len(h.quiz.questions)-1]
	assert.Equal(t, StateReady, last.State)
	assert.Equal(t, q.Generation+1, last.Generation)
	require.Len(t, h.quiz.results, 1)
	assert.False(t, h.quiz.results[0].Correct)
}

func TestSession_StaleAdvanceIsNoop(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addWords(t, "amor", "любовь", "terra", "земля", "aqua", "вода", "ignis", "огонь")

	_, err := h.session.NextQuiz(ctx)
	require.NoError(t, err)
	_, ok, err := h.session.AnswerQuiz(ctx, 0, "не то")
	require.NoError(t, err)
	require.True(t, ok)
	stale := h.sched.timers[0]

	fresh, err := h.session.NextQuiz(ctx)
	require.NoError(t, err)
	assert.True(t, stale.stopped)

	// a callback that already left the timer wheel must not regenerate the question
	stale.f()
	q, err := h.session.NextQuiz(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh.Generation+1, q.Generation)

	_, ok, err = h.session.AnswerQuiz(ctx, fresh.Generation, "не то")
	require.NoError(t, err)
	assert.False(t, ok, "answer for an older question is rejected")
}

func TestSession_Typing(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addWords(t, "amicus", "друг")

	p, err := h.session.NextTyping(ctx)
	require.NoError(t, err)
	require.Equal(t, StateReady, p.State)

	grade, ok, err := h.session.SubmitTyping(ctx, p.Generation, " Друг ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, grade.Correct)

	st, err := h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Stats.TypingCorrect)
	assert.Equal(t, 10, st.Stats.XP)
}

func TestSession_Flashcards(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	card, err := h.session.PickCard(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, card.State)

	h.addWords(t, "aqua", "вода")
	card, err = h.session.PickCard(ctx)
	require.NoError(t, err)
	assert.Equal(t, Flashcard{State: StateFront, WordID: card.WordID, Latin: "aqua"}, card)

	card, err = h.session.FlipCard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "вода", card.Meaning)
}

func TestSession_DayRollover(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addWords(t, "aqua", "вода")

	d, err := h.session.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Streak)
	assert.Equal(t, 1, d.TodayAdded)
	assert.Equal(t, 20, d.GoalPercent)

	h.clock.advance(24 * time.Hour)
	d, err = h.session.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", d.Date)
	assert.Equal(t, 2, d.Streak)
	assert.Equal(t, 0, d.TodayAdded)

	h.clock.advance(72 * time.Hour)
	d, err = h.session.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Streak)
}

func TestSession_RulesIdiomsAndGoal(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	r, err := h.session.AddRule(ctx, entity.Rule{Title: "Ablativus", Category: "casus", Note: "instrumentalis"})
	require.NoError(t, err)
	_, err = h.session.AddRule(ctx, entity.Rule{Title: "ablativus", Category: "Casus", Note: "instrumentalis "})
	assert.ErrorIs(t, err, entity.ErrDuplicateRule)
	_, err = h.session.AddRule(ctx, entity.Rule{Title: "x"})
	assert.ErrorIs(t, err, entity.ErrInvalidRule)

	rules, err := h.session.ListRules(ctx, "CASUS")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	rules, err = h.session.ListRules(ctx, "verbum")
	require.NoError(t, err)
	assert.Empty(t, rules)

	_, err = h.session.AddIdiom(ctx, entity.Idiom{Latin: "carpe diem", Literal: "лови день", Meaning: "живи настоящим"})
	require.NoError(t, err)
	idioms, err := h.session.ListIdioms(ctx, "")
	require.NoError(t, err)
	require.Len(t, idioms, 1)
	require.NoError(t, h.session.RemoveIdiom(ctx, idioms[0].ID))
	require.NoError(t, h.session.RemoveRule(ctx, r.ID))
	assert.ErrorIs(t, h.session.RemoveRule(ctx, r.ID), entity.ErrRuleNotFound)

	assert.ErrorIs(t, h.session.SetGoal(ctx, 0), entity.ErrInvalidGoal)
	require.NoError(t, h.session.SetGoal(ctx, 12))
	assert.ErrorIs(t, h.session.SetChallengeTarget(ctx, -1), entity.ErrInvalidTarget)
	require.NoError(t, h.session.SetChallengeTarget(ctx, 3))

	st, err := h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, st.Goal)
	assert.Equal(t, 3, st.Challenges.DailyCorrectTarget)
}

func TestSession_ResetKeepsTodayAsVisit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addWords(t, "aqua", "вода")
	h.store.slots["latin.app.v2"] = []byte(`{"words":[{"latin":"old","meaning":"старое"}]}`)

	require.NoError(t, h.session.Reset(ctx))
	st, err := h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.Words)
	assert.Equal(t, 1, st.Streak)
	require.NotNil(t, st.LastVisit)
	assert.Equal(t, "2024-03-10", *st.LastVisit)

	// the fresh state is persisted, so legacy slots are not migrated again
	logger, _ := test.NewNullLogger()
	reloaded, report, err := codec.New(h.store, logger).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, codec.CurrentKey, report.Source)
	assert.Empty(t, reloaded.Words)
}

func TestSession_Mutate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addWords(t, "aqua", "вода")

	err := h.session.Mutate(ctx, func(st *entity.AppState) error {
		st.Words = append(st.Words, entity.Word{ID: "x", Latin: "AQUA", Meaning: "вода"}, entity.Word{ID: "y", Latin: "lux", Meaning: "свет"})
		st.Goal = 0
		return nil
	})
	require.NoError(t, err)
	st, err := h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Words, 2)
	assert.Equal(t, 1, st.Goal)

	boom := errors.New("boom")
	err = h.session.Mutate(ctx, func(st *entity.AppState) error {
		st.Words = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)
	st, err = h.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Words, 2)
}
