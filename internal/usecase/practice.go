package usecase

import (
	"math/rand/v2"
	"time"
)

// Messages shown when a practice mode cannot start.
const (
	MsgFlashcardsEmpty = "Добавь слова, чтобы начать повторение."
	MsgQuizTooFew      = "Добавь минимум 4 слова для запуска теста."
	MsgTypingEmpty     = "Добавь слова, чтобы тренировать перевод."
)

// QuizOptionCount is the number of options of a multiple-choice question.
const QuizOptionCount = 4

// TypingPoolSize bounds the candidate pool of the typed-answer quiz.
const TypingPoolSize = 12

// PracticeState is the state of one practice mode.
type PracticeState string

const (
	StateIdle        PracticeState = "idle"
	StateFront       PracticeState = "front"
	StateBack        PracticeState = "back"
	StateUnavailable PracticeState = "unavailable"
	StateReady       PracticeState = "ready"
	StateAnswered    PracticeState = "answered"
)

// Randomizer is the subset of *rand.Rand used for selection.
type Randomizer interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

var _ Randomizer = (*rand.Rand)(nil)

// Timer is a pending scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d. The auto-advance between questions goes through it.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime timer wheel.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FlashcardView renders flashcards.
type FlashcardView interface {
	ShowPlaceholder(message string)
	ShowFront(latin string)
	ShowBack(meaning, latin string)
}

// QuizView renders the multiple-choice quiz.
type QuizView interface {
	ShowUnavailable(message string)
	ShowQuestion(q QuizQuestion)
	ShowResult(g QuizGrade)
}

// TypingView renders the typed-answer quiz.
type TypingView interface {
	ShowUnavailable(message string)
	ShowPrompt(p TypingPrompt)
	ShowResult(g TypingGrade)
}

// PracticeView bundles the optional sub-views of a host. Nil members are skipped.
type PracticeView struct {
	Flashcard FlashcardView
	Quiz      QuizView
	Typing    TypingView
}
