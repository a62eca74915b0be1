package usecase

import "github.com/eslsoft/lingualatina/internal/entity"

// Flashcard is what the flashcard mode currently shows.
type Flashcard struct {
	State   PracticeState `json:"state"`
	WordID  string        `json:"wordId,omitempty"`
	Latin   string        `json:"latin,omitempty"`
	Meaning string        `json:"meaning,omitempty"` // only set on the back side
	Message string        `json:"message,omitempty"`
}

// Flashcards is the Idle → Front ⇄ Back state machine.
type Flashcards struct {
	rng   Randomizer
	state PracticeState
	card  entity.Word
}

func NewFlashcards(rng Randomizer) *Flashcards {
	return &Flashcards{rng: rng, state: StateIdle}
}

// Pick draws a random word and shows its front, or goes Idle on an empty collection.
func (f *Flashcards) Pick(words []entity.Word) Flashcard {
	if len(words) == 0 {
		f.state = StateIdle
		f.card = entity.Word{}
		return f.Current()
	}
	f.card = words[f.rng.IntN(len(words))]
	f.state = StateFront
	return f.Current()
}

// Flip toggles between front and back. No-op while Idle.
func (f *Flashcards) Flip() Flashcard {
	switch f.state {
	case StateFront:
		f.state = StateBack
	case StateBack:
		f.state = StateFront
	}
	return f.Current()
}

// Reset returns to Idle, e.g. after the collection was replaced.
func (f *Flashcards) Reset() {
	f.state = StateIdle
	f.card = entity.Word{}
}

func (f *Flashcards) Current() Flashcard {
	switch f.state {
	case StateFront:
		return Flashcard{State: StateFront, WordID: f.card.ID, Latin: f.card.Latin}
	case StateBack:
		return Flashcard{State: StateBack, WordID: f.card.ID, Latin: f.card.Latin, Meaning: f.card.Meaning}
	default:
		return Flashcard{State: StateIdle, Message: MsgFlashcardsEmpty}
	}
}

func (c Flashcard) render(v FlashcardView) {
	if v == nil {
		return
	}
	switch c.State {
	case StateFront:
		v.ShowFront(c.Latin)
	case StateBack:
		v.ShowBack(c.Meaning, c.Latin)
	default:
		v.ShowPlaceholder(c.Message)
	}
}
