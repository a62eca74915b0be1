package usecase

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/eslsoft/lingualatina/internal/entity"
	"github.com/eslsoft/lingualatina/internal/repository"
)

// AddWord normalizes w, rejects incomplete and duplicate words and puts it first in the collection.
func (s *Session) AddWord(ctx context.Context, w entity.Word) (entity.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.ID = uuid.NewString()
	w.CreatedAt = s.now().UnixMilli()
	w.Normalize(s.now())
	if !w.Valid() {
		return entity.Word{}, entity.ErrInvalidWord
	}
	err := s.update(ctx, func(st *entity.AppState) error {
		if lo.ContainsBy(st.Words, func(x entity.Word) bool { return x.Key() == w.Key() }) {
			return entity.ErrDuplicateWord
		}
		st.Words = slices.Insert(st.Words, 0, w)
		today := s.today()
		NewLedger(st).RecordWordsAdded(today, 1)
		RecomputeTodayAdded(st, today, s.loc)
		return nil
	})
	if err != nil {
		return entity.Word{}, err
	}
	s.logger.WithField("word_id", w.ID).Infof("word added: %s", w.Latin)
	s.refreshPractice()
	return w, nil
}

// UpdateWord replaces the editable fields of an existing word. Id, creation time and the learned flag are kept.
func (s *Session) UpdateWord(ctx context.Context, w entity.Word) (entity.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out entity.Word
	err := s.update(ctx, func(st *entity.AppState) error {
		idx := slices.IndexFunc(st.Words, func(x entity.Word) bool { return x.ID == w.ID })
		if idx < 0 {
			return entity.ErrWordNotFound
		}
		w.CreatedAt = st.Words[idx].CreatedAt
		w.Learned = st.Words[idx].Learned
		w.Normalize(s.now())
		if !w.Valid() {
			return entity.ErrInvalidWord
		}
		for i, x := range st.Words {
			if i != idx && x.Key() == w.Key() {
				return entity.ErrDuplicateWord
			}
		}
		st.Words[idx] = w
		out = w
		return nil
	})
	if err != nil {
		return entity.Word{}, err
	}
	return out, nil
}

// RemoveWord deletes a word and takes it back from the ledger day it was added on.
func (s *Session) RemoveWord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.update(ctx, func(st *entity.AppState) error {
		idx := slices.IndexFunc(st.Words, func(x entity.Word) bool { return x.ID == id })
		if idx < 0 {
			return entity.ErrWordNotFound
		}
		removed := st.Words[idx]
		st.Words = slices.Delete(st.Words, idx, idx+1)
		ledger := NewLedger(st)
		if date := entity.DateKey(entity.MillisToTime(removed.CreatedAt), s.loc); st.Activity[date] != nil {
			ledger.RecordWordRemoved(date, 1)
		}
		RecomputeTodayAdded(st, s.today(), s.loc)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.WithField("word_id", id).Info("word removed")
	s.refreshPractice()
	return nil
}

// ToggleLearned flips the learned flag and returns the updated word.
func (s *Session) ToggleLearned(ctx context.Context, id string) (entity.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out entity.Word
	err := s.update(ctx, func(st *entity.AppState) error {
		idx := slices.IndexFunc(st.Words, func(x entity.Word) bool { return x.ID == id })
		if idx < 0 {
			return entity.ErrWordNotFound
		}
		st.Words[idx].Learned = !st.Words[idx].Learned
		out = st.Words[idx]
		return nil
	})
	return out, err
}

// ListWords filters, orders and pages the collection.
func (s *Session) ListWords(ctx context.Context, query *repository.ListWordQuery) ([]entity.Word, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginDay(ctx); err != nil {
		return nil, 0, err
	}
	return FilterWords(s.state.Clone().Words, query)
}

// AddRule stores a grammar note ahead of the existing ones.
func (s *Session) AddRule(ctx context.Context, r entity.Rule) (entity.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.NewString()
	r.CreatedAt = s.now().UnixMilli()
	r.Normalize(s.now())
	if !r.Valid() {
		return entity.Rule{}, entity.ErrInvalidRule
	}
	err := s.update(ctx, func(st *entity.AppState) error {
		if lo.ContainsBy(st.Rules, func(x entity.Rule) bool { return x.Key() == r.Key() }) {
			return entity.ErrDuplicateRule
		}
		st.Rules = slices.Insert(st.Rules, 0, r)
		return nil
	})
	if err != nil {
		return entity.Rule{}, err
	}
	return r, nil
}

func (s *Session) RemoveRule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(ctx, func(st *entity.AppState) error {
		idx := slices.IndexFunc(st.Rules, func(x entity.Rule) bool { return x.ID == id })
		if idx < 0 {
			return entity.ErrRuleNotFound
		}
		st.Rules = slices.Delete(st.Rules, idx, idx+1)
		return nil
	})
}

// ListRules returns rules whose title, category or note contains keyword.
func (s *Session) ListRules(ctx context.Context, keyword string) ([]entity.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginDay(ctx); err != nil {
		return nil, err
	}
	kw := entity.NormalizeToken(keyword)
	return lo.Filter(s.state.Rules, func(r entity.Rule, _ int) bool {
		return containsFold(kw, r.Title, r.Category, r.Note)
	}), nil
}

// AddIdiom stores a set phrase ahead of the existing ones.
func (s *Session) AddIdiom(ctx context.Context, i entity.Idiom) (entity.Idiom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i.ID = uuid.NewString()
	i.CreatedAt = s.now().UnixMilli()
	i.Normalize(s.now())
	if !i.Valid() {
		return entity.Idiom{}, entity.ErrInvalidIdiom
	}
	err := s.update(ctx, func(st *entity.AppState) error {
		if lo.ContainsBy(st.Idioms, func(x entity.Idiom) bool { return x.Key() == i.Key() }) {
			return entity.ErrDuplicateIdiom
		}
		st.Idioms = slices.Insert(st.Idioms, 0, i)
		return nil
	})
	if err != nil {
		return entity.Idiom{}, err
	}
	return i, nil
}

func (s *Session) RemoveIdiom(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(ctx, func(st *entity.AppState) error {
		idx := slices.IndexFunc(st.Idioms, func(x entity.Idiom) bool { return x.ID == id })
		if idx < 0 {
			return entity.ErrIdiomNotFound
		}
		st.Idioms = slices.Delete(st.Idioms, idx, idx+1)
		return nil
	})
}

// ListIdioms returns idioms whose latin, literal or meaning contains keyword.
func (s *Session) ListIdioms(ctx context.Context, keyword string) ([]entity.Idiom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginDay(ctx); err != nil {
		return nil, err
	}
	kw := entity.NormalizeToken(keyword)
	return lo.Filter(s.state.Idioms, func(i entity.Idiom, _ int) bool {
		return containsFold(kw, i.Latin, i.Literal, i.Meaning)
	}), nil
}

// SetGoal changes the number of new words aimed for per day.
func (s *Session) SetGoal(ctx context.Context, goal int) error {
	if goal < 1 {
		return entity.ErrInvalidGoal
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(ctx, func(st *entity.AppState) error {
		st.Goal = goal
		return nil
	})
}

// SetChallengeTarget changes the number of correct answers the daily challenge asks for.
func (s *Session) SetChallengeTarget(ctx context.Context, target int) error {
	if target < 1 {
		return entity.ErrInvalidTarget
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(ctx, func(st *entity.AppState) error {
		st.Challenges.DailyCorrectTarget = target
		return nil
	})
}

func containsFold(kw string, fields ...string) bool {
	if kw == "" {
		return true
	}
	return lo.SomeBy(fields, func(f string) bool { return strings.Contains(strings.ToLower(f), kw) })
}
