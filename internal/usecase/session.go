package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingualatina/internal/entity"
	"github.com/eslsoft/lingualatina/internal/usecase/codec"
)

// DefaultAdvanceDelay is the feedback window before the next question appears.
const DefaultAdvanceDelay = 900 * time.Millisecond

// Practice modes, as reported to the metrics recorder.
const (
	ModeQuiz   = "quiz"
	ModeTyping = "typing"
)

// MetricsRecorder receives practice and collection measurements.
type MetricsRecorder interface {
	ObserveAnswer(mode string, correct bool, xp int)
	SetCollectionSize(kind string, n int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveAnswer(string, bool, int) {}
func (nopMetrics) SetCollectionSize(string, int)   {}

// Session owns the application state of a single learner together with the
// practice engines. Every exported method is safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	state  *entity.AppState
	codec  *codec.Codec
	now    func() time.Time
	loc    *time.Location
	closed bool

	flash  *Flashcards
	quiz   *Quiz
	typing *Typing

	sched       Scheduler
	delay       time.Duration
	quizTimer   Timer
	typingTimer Timer
	view        PracticeView

	logger  logrus.FieldLogger
	metrics MetricsRecorder
}

type SessionOption func(*sessionConfig)

type sessionConfig struct {
	now     func() time.Time
	loc     *time.Location
	rng     Randomizer
	sched   Scheduler
	delay   time.Duration
	view    PracticeView
	metrics MetricsRecorder
}

func WithSessionClock(now func() time.Time) SessionOption {
	return func(c *sessionConfig) {
		if now != nil {
			c.now = now
		}
	}
}

func WithSessionLocation(loc *time.Location) SessionOption {
	return func(c *sessionConfig) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithRandomizer replaces the random source of the practice engines.
func WithRandomizer(rng Randomizer) SessionOption {
	return func(c *sessionConfig) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithAutoAdvance schedules the next question delay after each graded answer.
// A nil scheduler turns auto-advance off.
func WithAutoAdvance(sched Scheduler, delay time.Duration) SessionOption {
	return func(c *sessionConfig) {
		c.sched = sched
		c.delay = delay
	}
}

func WithView(view PracticeView) SessionOption {
	return func(c *sessionConfig) { c.view = view }
}

func WithMetrics(m MetricsRecorder) SessionOption {
	return func(c *sessionConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// NewSession loads, sanitizes and day-rolls the persisted state.
func NewSession(ctx context.Context, c *codec.Codec, logger logrus.FieldLogger, opts ...SessionOption) (*Session, error) {
	cfg := sessionConfig{
		now:     time.Now,
		loc:     time.Local,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6c61)),
		sched:   RealScheduler{},
		delay:   DefaultAdvanceDelay,
		metrics: nopMetrics{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	st, report, err := c.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	SanitizeState(st)

	s := &Session{
		state:   st,
		codec:   c,
		now:     cfg.now,
		loc:     cfg.loc,
		flash:   NewFlashcards(cfg.rng),
		quiz:    NewQuiz(cfg.rng),
		typing:  NewTyping(cfg.rng),
		sched:   cfg.sched,
		delay:   cfg.delay,
		view:    cfg.view,
		logger:  logger,
		metrics: cfg.metrics,
	}

	logger.WithFields(logrus.Fields{
		"source":   report.Source,
		"migrated": report.Migrated,
		"words":    len(st.Words),
	}).Info("state loaded")

	BeginDay(s.state, s.today(), s.loc)
	if err := s.codec.Save(ctx, s.state); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	s.observeCollections()
	return s, nil
}

func (s *Session) today() string {
	return entity.DateKey(s.now(), s.loc)
}

// beginDay rolls the streak over when the local date changed while the session was open.
func (s *Session) beginDay(ctx context.Context) error {
	if !BeginDay(s.state, s.today(), s.loc) {
		return nil
	}
	s.logger.WithField("date", *s.state.LastVisit).Info("new day started")
	return s.codec.Save(ctx, s.state)
}

// update applies fn to a copy of the state and commits it once it is persisted.
func (s *Session) update(ctx context.Context, fn func(st *entity.AppState) error) error {
	if err := s.beginDay(ctx); err != nil {
		return err
	}
	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.codec.Save(ctx, next); err != nil {
		return err
	}
	s.state = next
	s.observeCollections()
	return nil
}

func (s *Session) observeCollections() {
	s.metrics.SetCollectionSize("words", len(s.state.Words))
	s.metrics.SetCollectionSize("rules", len(s.state.Rules))
	s.metrics.SetCollectionSize("idioms", len(s.state.Idioms))
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot(ctx context.Context) (*entity.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginDay(ctx); err != nil {
		return nil, err
	}
	return s.state.Clone(), nil
}

// Dashboard is the derived progress overview.
type Dashboard struct {
	Date           string        `json:"date"`
	TotalWords     int           `json:"totalWords"`
	LearnedWords   int           `json:"learnedWords"`
	TotalRules     int           `json:"totalRules"`
	TotalIdioms    int           `json:"totalIdioms"`
	TodayAdded     int           `json:"todayAdded"`
	Goal           int           `json:"goal"`
	GoalPercent    int           `json:"goalPercent"`
	Streak         int           `json:"streak"`
	Stats          entity.Stats  `json:"stats"`
	Level          int           `json:"level"`
	LevelProgress  int           `json:"levelProgress"`
	Challenge      Challenge     `json:"challenge"`
	Achievements   []Achievement `json:"achievements"`
	LearnedPercent int           `json:"learnedPercent"`
}

func (s *Session) Dashboard(ctx context.Context) (Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginDay(ctx); err != nil {
		return Dashboard{}, err
	}
	today := s.today()
	st := s.state
	d := Dashboard{
		Date:          today,
		TotalWords:    len(st.Words),
		LearnedWords:  st.LearnedCount(),
		TotalRules:    len(st.Rules),
		TotalIdioms:   len(st.Idioms),
		TodayAdded:    st.TodayAdded,
		Goal:          st.Goal,
		GoalPercent:   percent(st.TodayAdded, st.Goal),
		Streak:        st.Streak,
		Stats:         st.Stats,
		Level:         Level(st.Stats.XP),
		LevelProgress: LevelProgressPercent(st.Stats.XP),
		Challenge:     ChallengeStatus(st, today),
		Achievements:  Achievements(st),
	}
	d.LearnedPercent = percent(d.LearnedWords, d.TotalWords)
	return d, nil
}

// percent is part/whole rounded down and capped at 100.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return min(part*100/whole, 100)
}

// Mutate runs fn against a copy of the state, sanitizes and persists the result.
// Bulk import goes through it.
func (s *Session) Mutate(ctx context.Context, fn func(st *entity.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.update(ctx, func(st *entity.AppState) error {
		if err := fn(st); err != nil {
			return err
		}
		SanitizeState(st)
		if st.Goal < 1 {
			st.Goal = 1
		}
		RecomputeTodayAdded(st, s.today(), s.loc)
		return nil
	})
	if err != nil {
		return err
	}
	s.refreshPractice()
	return nil
}

// Reset drops all progress and starts a fresh day on default state.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.codec.Clear(ctx); err != nil {
		return err
	}
	fresh := codec.Defaults()
	UpdateStreak(fresh, s.today(), s.loc)
	if err := s.codec.Save(ctx, fresh); err != nil {
		return err
	}
	s.state = fresh
	s.observeCollections()
	s.logger.Warn("progress reset")
	s.stopTimers()
	s.flash.Reset()
	s.quiz.Reset()
	s.typing.Reset()
	s.refreshPractice()
	return nil
}

// Close stops pending auto-advance timers. The session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimers()
}
