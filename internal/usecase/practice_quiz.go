package usecase

import "github.com/eslsoft/lingualatina/internal/entity"

// QuizQuestion is the current multiple-choice question.
type QuizQuestion struct {
	State      PracticeState `json:"state"`
	Generation uint64        `json:"generation"`
	WordID     string        `json:"wordId,omitempty"`
	Prompt     string        `json:"prompt,omitempty"`
	Options    []string      `json:"options,omitempty"`
	Message    string        `json:"message,omitempty"`
}

// QuizGrade is the outcome of one answered question.
type QuizGrade struct {
	Correct  bool   `json:"correct"`
	Selected string `json:"selected"`
	Answer   string `json:"answer"`
	Reward   Reward `json:"reward"`
}

// Quiz is the Unavailable/Ready/Answered multiple-choice state machine.
type Quiz struct {
	rng        Randomizer
	state      PracticeState
	generation uint64
	word       entity.Word
	options    []string
}

func NewQuiz(rng Randomizer) *Quiz {
	return &Quiz{rng: rng, state: StateUnavailable}
}

// Next generates a fresh question. Fewer than QuizOptionCount words leave the quiz Unavailable.
func (q *Quiz) Next(words []entity.Word) QuizQuestion {
	q.generation++
	if len(words) < QuizOptionCount {
		q.state = StateUnavailable
		q.word = entity.Word{}
		q.options = nil
		return q.Current()
	}

	correct := q.rng.IntN(len(words))
	others := make([]int, 0, len(words)-1)
	for i := range words {
		if i != correct {
			others = append(others, i)
		}
	}
	// partial Fisher–Yates: the first QuizOptionCount-1 slots become a uniform sample
	for i := 0; i < QuizOptionCount-1; i++ {
		j := i + q.rng.IntN(len(others)-i)
		others[i], others[j] = others[j], others[i]
	}

	options := make([]string, 0, QuizOptionCount)
	for _, idx := range others[:QuizOptionCount-1] {
		options = append(options, words[idx].Meaning)
	}
	options = append(options, words[correct].Meaning)
	q.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	q.word = words[correct]
	q.options = options
	q.state = StateReady
	return q.Current()
}

// Check grades the selected option against the stored meaning, case-sensitively.
// It reports false when no question is awaiting an answer.
func (q *Quiz) Check(st *entity.AppState, today, selected string) (QuizGrade, bool) {
	if q.state != StateReady {
		return QuizGrade{}, false
	}
	st.Stats.QuizzesTaken++
	grade := QuizGrade{Selected: selected, Answer: q.word.Meaning}
	if selected == q.word.Meaning {
		grade.Correct = true
		grade.Reward = MarkCorrectAnswer(st, today)
	} else {
		MarkIncorrectAnswer(st)
	}
	q.state = StateAnswered
	return grade, true
}

func (q *Quiz) Reset() {
	q.generation++
	q.state = StateUnavailable
	q.word = entity.Word{}
	q.options = nil
}

func (q *Quiz) Generation() uint64 { return q.generation }

func (q *Quiz) Current() QuizQuestion {
	if q.state == StateUnavailable {
		return QuizQuestion{State: StateUnavailable, Generation: q.generation, Message: MsgQuizTooFew}
	}
	return QuizQuestion{
		State:      q.state,
		Generation: q.generation,
		WordID:     q.word.ID,
		Prompt:     q.word.Latin,
		Options:    append([]string(nil), q.options...),
	}
}

func (qq QuizQuestion) render(v QuizView) {
	if v == nil {
		return
	}
	if qq.State == StateUnavailable {
		v.ShowUnavailable(qq.Message)
		return
	}
	v.ShowQuestion(qq)
}
