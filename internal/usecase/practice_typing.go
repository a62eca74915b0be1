package usecase

import (
	"sort"

	"github.com/eslsoft/lingualatina/internal/entity"
)

// TypingPrompt is the current typed-answer question.
type TypingPrompt struct {
	State      PracticeState `json:"state"`
	Generation uint64        `json:"generation"`
	WordID     string        `json:"wordId,omitempty"`
	Prompt     string        `json:"prompt,omitempty"`
	Message    string        `json:"message,omitempty"`
}

// TypingGrade is the outcome of one typed answer.
type TypingGrade struct {
	Correct bool   `json:"correct"`
	Typed   string `json:"typed"`
	Answer  string `json:"answer"`
	Reward  Reward `json:"reward"`
}

// Typing is the typed-answer state machine, biased toward words not yet learned.
type Typing struct {
	rng        Randomizer
	state      PracticeState
	generation uint64
	word       entity.Word
}

func NewTyping(rng Randomizer) *Typing {
	return &Typing{rng: rng, state: StateUnavailable}
}

// typingPool returns up to TypingPoolSize words, not-yet-learned first, in collection order.
func typingPool(words []entity.Word) []entity.Word {
	pool := append([]entity.Word(nil), words...)
	sort.SliceStable(pool, func(i, j int) bool { return !pool[i].Learned && pool[j].Learned })
	return pool[:min(TypingPoolSize, len(pool))]
}

func (t *Typing) Next(words []entity.Word) TypingPrompt {
	t.generation++
	if len(words) == 0 {
		t.state = StateUnavailable
		t.word = entity.Word{}
		return t.Current()
	}
	pool := typingPool(words)
	t.word = pool[t.rng.IntN(len(pool))]
	t.state = StateReady
	return t.Current()
}

// Submit compares trimmed, lowercased text with the meaning.
func (t *Typing) Submit(st *entity.AppState, today, text string) (TypingGrade, bool) {
	if t.state != StateReady {
		return TypingGrade{}, false
	}
	grade := TypingGrade{Typed: text, Answer: t.word.Meaning}
	if entity.NormalizeToken(text) == entity.NormalizeToken(t.word.Meaning) {
		grade.Correct = true
		st.Stats.TypingCorrect++
		grade.Reward = MarkCorrectAnswer(st, today)
	} else {
		MarkIncorrectAnswer(st)
	}
	t.state = StateAnswered
	return grade, true
}

func (t *Typing) Reset() {
	t.generation++
	t.state = StateUnavailable
	t.word = entity.Word{}
}

func (t *Typing) Generation() uint64 { return t.generation }

func (t *Typing) Current() TypingPrompt {
	if t.state == StateUnavailable {
		return TypingPrompt{State: StateUnavailable, Generation: t.generation, Message: MsgTypingEmpty}
	}
	return TypingPrompt{State: t.state, Generation: t.generation, WordID: t.word.ID, Prompt: t.word.Latin}
}

func (p TypingPrompt) render(v TypingView) {
	if v == nil {
		return
	}
	if p.State == StateUnavailable {
		v.ShowUnavailable(p.Message)
		return
	}
	v.ShowPrompt(p)
}
