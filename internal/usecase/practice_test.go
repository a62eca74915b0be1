package usecase

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/lingualatina/internal/entity"
)

func testRand() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) }

func makeWords(n int) []entity.Word {
	words := make([]entity.Word, n)
	for i := range words {
		words[i] = entity.Word{
			ID:      fmt.Sprintf("w%d", i),
			Latin:   fmt.Sprintf("latin%d", i),
			Meaning: fmt.Sprintf("meaning%d", i),
		}
	}
	return words
}

func wordByLatin(words []entity.Word, latin string) entity.Word {
	for _, w := range words {
		if w.Latin == latin {
			return w
		}
	}
	return entity.Word{}
}

func TestFlashcards(t *testing.T) {
	f := NewFlashcards(testRand())

	card := f.Pick(nil)
	assert.Equal(t, StateIdle, card.State)
	assert.Equal(t, MsgFlashcardsEmpty, card.Message)
	assert.Equal(t, StateIdle, f.Flip().State)

	words := makeWords(3)
	card = f.Pick(words)
	require.Equal(t, StateFront, card.State)
	assert.Empty(t, card.Meaning)
	w := wordByLatin(words, card.Latin)
	require.NotEmpty(t, w.ID)

	back := f.Flip()
	assert.Equal(t, StateBack, back.State)
	assert.Equal(t, w.Meaning, back.Meaning)
	assert.Equal(t, w.Latin, back.Latin)
	assert.Equal(t, StateFront, f.Flip().State)
}

func TestQuiz_Precondition(t *testing.T) {
	q := NewQuiz(testRand())

	question := q.Next(makeWords(3))
	assert.Equal(t, StateUnavailable, question.State)
	assert.Equal(t, MsgQuizTooFew, question.Message)
	assert.Empty(t, question.Options)

	words := makeWords(4)
	question = q.Next(words)
	require.Equal(t, StateReady, question.State)
	require.Len(t, question.Options, QuizOptionCount)
	assert.Contains(t, question.Options, wordByLatin(words, question.Prompt).Meaning)
	assert.ElementsMatch(t, []string{"meaning0", "meaning1", "meaning2", "meaning3"}, question.Options)
}

func TestQuiz_DistractorsAreDistinctWords(t *testing.T) {
	q := NewQuiz(testRand())
	words := makeWords(10)
	for i := 0; i < 50; i++ {
		question := q.Next(words)
		seen := map[string]bool{}
		for _, opt := range question.Options {
			assert.False(t, seen[opt], "duplicate option %q", opt)
			seen[opt] = true
		}
		assert.True(t, seen[wordByLatin(words, question.Prompt).Meaning])
	}
}

func TestQuiz_Check(t *testing.T) {
	st := entity.NewAppState()
	q := NewQuiz(testRand())
	words := makeWords(5)

	_, ok := q.Check(st, testDay, "meaning0")
	assert.False(t, ok)
	assert.Equal(t, 0, st.Stats.QuizzesTaken)

	question := q.Next(words)
	answer := wordByLatin(words, question.Prompt).Meaning
	grade, ok := q.Check(st, testDay, answer)
	require.True(t, ok)
	assert.True(t, grade.Correct)
	assert.Equal(t, 1, st.Stats.QuizzesTaken)
	assert.Equal(t, 1, st.Stats.CorrectAnswers)
	assert.Equal(t, XPPerCorrect, st.Stats.XP)
	assert.Equal(t, StateAnswered, q.Current().State)

	// already answered
	_, ok = q.Check(st, testDay, answer)
	assert.False(t, ok)

	question = q.Next(words)
	answer = wordByLatin(words, question.Prompt).Meaning
	grade, ok = q.Check(st, testDay, "MEANING"+answer[len("meaning"):])
	require.True(t, ok)
	assert.False(t, grade.Correct, "quiz answers are case-sensitive")
	assert.Equal(t, answer, grade.Answer)
	assert.Equal(t, 2, st.Stats.QuizzesTaken)
	assert.Equal(t, 0, st.Stats.AnswerStreak)
	assert.Equal(t, XPPerCorrect, st.Stats.XP)
}

func TestTyping_Grading(t *testing.T) {
	st := entity.NewAppState()
	typing := NewTyping(testRand())

	prompt := typing.Next(nil)
	assert.Equal(t, StateUnavailable, prompt.State)
	assert.Equal(t, MsgTypingEmpty, prompt.Message)

	words := []entity.Word{{ID: "1", Latin: "amicus", Meaning: "друг"}}
	prompt = typing.Next(words)
	require.Equal(t, StateReady, prompt.State)
	assert.Equal(t, "amicus", prompt.Prompt)

	grade, ok := typing.Submit(st, testDay, " Друг ")
	require.True(t, ok)
	assert.True(t, grade.Correct)
	assert.Equal(t, 1, st.Stats.TypingCorrect)
	assert.Equal(t, 1, st.Stats.CorrectAnswers)

	typing.Next(words)
	grade, ok = typing.Submit(st, testDay, "враг")
	require.True(t, ok)
	assert.False(t, grade.Correct)
	assert.Equal(t, "друг", grade.Answer)
	assert.Equal(t, 1, st.Stats.TypingCorrect)
}

func TestTypingPool_PrefersUnlearned(t *testing.T) {
	words := makeWords(20)
	for i := 0; i < 10; i++ {
		words[i].Learned = true
	}
	pool := typingPool(words)
	require.Len(t, pool, TypingPoolSize)
	for i := 0; i < 10; i++ {
		assert.False(t, pool[i].Learned)
		assert.Equal(t, fmt.Sprintf("w%d", i+10), pool[i].ID)
	}
	assert.Equal(t, "w0", pool[10].ID)
	assert.Equal(t, "w1", pool[11].ID)

	assert.Len(t, typingPool(makeWords(3)), 3)
	assert.True(t, words[0].Learned, "input must not be reordered")
}
