package usecase

import (
	"context"

	"github.com/eslsoft/lingualatina/internal/entity"
)

// PickCard shows the front of a random word, or the placeholder on an empty collection.
func (s *Session) PickCard(ctx context.Context) (Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginDay(ctx); err != nil {
		return Flashcard{}, err
	}
	card := s.flash.Pick(s.state.Words)
	card.render(s.view.Flashcard)
	return card, nil
}

// FlipCard turns the current card over.
func (s *Session) FlipCard(ctx context.Context) (Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginDay(ctx); err != nil {
		return Flashcard{}, err
	}
	card := s.flash.Flip()
	card.render(s.view.Flashcard)
	return card, nil
}

// NextQuiz generates a new multiple-choice question, cancelling a pending auto-advance.
func (s *Session) NextQuiz(ctx context.Context) (QuizQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginDay(ctx); err != nil {
		return QuizQuestion{}, err
	}
	return s.nextQuiz(), nil
}

func (s *Session) nextQuiz() QuizQuestion {
	stopTimer(&s.quizTimer)
	q := s.quiz.Next(s.state.Words)
	q.render(s.view.Quiz)
	return q
}

// AnswerQuiz grades the selected option. It reports false, without touching the state,
// when no question is awaiting an answer or generation names an older question.
// A zero generation grades whatever question is current.
func (s *Session) AnswerQuiz(ctx context.Context, generation uint64, selected string) (QuizGrade, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != 0 && generation != s.quiz.Generation() {
		return QuizGrade{}, false, nil
	}
	if s.quiz.Current().State != StateReady {
		return QuizGrade{}, false, nil
	}

	var (
		grade  QuizGrade
		ok     bool
		engine = *s.quiz
	)
	err := s.update(ctx, func(st *entity.AppState) error {
		grade, ok = s.quiz.Check(st, s.today(), selected)
		return nil
	})
	if err != nil {
		// the question stays open for a retry
		*s.quiz = engine
		return QuizGrade{}, false, err
	}
	if !ok {
		return QuizGrade{}, false, nil
	}

	s.metrics.ObserveAnswer(ModeQuiz, grade.Correct, grade.Reward.Total())
	s.view.renderQuizResult(grade)
	s.scheduleAdvance(&s.quizTimer, s.quiz.Generation, func() {
		q := s.quiz.Next(s.state.Words)
		q.render(s.view.Quiz)
	})
	return grade, true, nil
}

// NextTyping picks a new typed-answer prompt, cancelling a pending auto-advance.
func (s *Session) NextTyping(ctx context.Context) (TypingPrompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginDay(ctx); err != nil {
		return TypingPrompt{}, err
	}
	return s.nextTyping(), nil
}

func (s *Session) nextTyping() TypingPrompt {
	stopTimer(&s.typingTimer)
	p := s.typing.Next(s.state.Words)
	p.render(s.view.Typing)
	return p
}

// SubmitTyping grades a typed translation. Stale or unexpected submissions report false.
func (s *Session) SubmitTyping(ctx context.Context, generation uint64, text string) (TypingGrade, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != 0 && generation != s.typing.Generation() {
		return TypingGrade{}, false, nil
	}
	if s.typing.Current().State != StateReady {
		return TypingGrade{}, false, nil
	}

	var (
		grade  TypingGrade
		ok     bool
		engine = *s.typing
	)
	err := s.update(ctx, func(st *entity.AppState) error {
		grade, ok = s.typing.Submit(st, s.today(), text)
		return nil
	})
	if err != nil {
		*s.typing = engine
		return TypingGrade{}, false, err
	}
	if !ok {
		return TypingGrade{}, false, nil
	}

	s.metrics.ObserveAnswer(ModeTyping, grade.Correct, grade.Reward.Total())
	s.view.renderTypingResult(grade)
	s.scheduleAdvance(&s.typingTimer, s.typing.Generation, func() {
		p := s.typing.Next(s.state.Words)
		p.render(s.view.Typing)
	})
	return grade, true, nil
}

// scheduleAdvance arms the single pending timer of a mode. The callback runs under the
// session lock and only if no new question was generated in the meantime.
func (s *Session) scheduleAdvance(slot *Timer, generation func() uint64, advance func()) {
	stopTimer(slot)
	if s.sched == nil {
		return
	}
	gen := generation()
	*slot = s.sched.AfterFunc(s.delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || generation() != gen {
			return
		}
		*slot = nil
		advance()
	})
}

// refreshPractice re-renders the modes after the collection changed.
func (s *Session) refreshPractice() {
	s.nextQuiz()
	card := s.flash.Pick(s.state.Words)
	card.render(s.view.Flashcard)
	if s.typing.Current().State == StateUnavailable {
		s.nextTyping()
	}
}

func (s *Session) stopTimers() {
	stopTimer(&s.quizTimer)
	stopTimer(&s.typingTimer)
}

func stopTimer(slot *Timer) {
	if *slot != nil {
		(*slot).Stop()
		*slot = nil
	}
}

func (v PracticeView) renderQuizResult(g QuizGrade) {
	if v.Quiz != nil {
		v.Quiz.ShowResult(g)
	}
}

func (v PracticeView) renderTypingResult(g TypingGrade) {
	if v.Typing != nil {
		v.Typing.ShowResult(g)
	}
}
