package cmd

import (
	"fmt"
	"io"

	"github.com/eslsoft/lingualatina/internal/usecase"
)

type flashcardConsole struct{ out io.Writer }

func (v flashcardConsole) ShowPlaceholder(message string) { fmt.Fprintln(v.out, message) }
func (v flashcardConsole) ShowFront(latin string)         { fmt.Fprintf(v.out, "\n  %s\n", latin) }
func (v flashcardConsole) ShowBack(meaning, latin string) {
	fmt.Fprintf(v.out, "\n  %s  ->  %s\n", latin, meaning)
}

type quizConsole struct{ out io.Writer }

func (v quizConsole) ShowUnavailable(message string) { fmt.Fprintln(v.out, message) }

func (v quizConsole) ShowQuestion(q usecase.QuizQuestion) {
	fmt.Fprintf(v.out, "\n%s?\n", q.Prompt)
	for i, opt := range q.Options {
		fmt.Fprintf(v.out, "  %d) %s\n", i+1, opt)
	}
}

func (v quizConsole) ShowResult(g usecase.QuizGrade) {
	if g.Correct {
		fmt.Fprintf(v.out, "correct! +%d XP\n", g.Reward.Total())
		return
	}
	fmt.Fprintf(v.out, "wrong, the answer is %s\n", g.Answer)
}

type typingConsole struct{ out io.Writer }

func (v typingConsole) ShowUnavailable(message string) { fmt.Fprintln(v.out, message) }

func (v typingConsole) ShowPrompt(p usecase.TypingPrompt) {
	fmt.Fprintf(v.out, "\n%s = ", p.Prompt)
}

func (v typingConsole) ShowResult(g usecase.TypingGrade) {
	if g.Correct {
		fmt.Fprintf(v.out, "correct! +%d XP\n", g.Reward.Total())
		return
	}
	fmt.Fprintf(v.out, "wrong, the answer is %s\n", g.Answer)
}

// consoleView renders every practice mode to out.
func consoleView(out io.Writer) usecase.PracticeView {
	return usecase.PracticeView{
		Flashcard: flashcardConsole{out: out},
		Quiz:      quizConsole{out: out},
		Typing:    typingConsole{out: out},
	}
}
