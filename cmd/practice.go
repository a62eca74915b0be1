/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingualatina/internal/app"
	"github.com/eslsoft/lingualatina/internal/usecase"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Interactive practice: flash, quiz or type",
}

var practiceFlashCmd = &cobra.Command{
	Use:   "flash",
	Short: "Flashcards: enter flips, n draws the next card, q quits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, func(ctx context.Context, s *usecase.Session, in *bufio.Scanner) error {
			card, err := s.PickCard(ctx)
			if err != nil || card.State == usecase.StateIdle {
				return err
			}
			for in.Scan() {
				switch strings.TrimSpace(in.Text()) {
				case "q":
					return nil
				case "n":
					card, err = s.PickCard(ctx)
				default:
					card, err = s.FlipCard(ctx)
				}
				if err != nil || card.State == usecase.StateIdle {
					return err
				}
			}
			return in.Err()
		})
	},
}

var practiceQuizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Multiple-choice quiz: answer with the option number, q quits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, func(ctx context.Context, s *usecase.Session, in *bufio.Scanner) error {
			q, err := s.NextQuiz(ctx)
			if err != nil || q.State == usecase.StateUnavailable {
				return err
			}
			for in.Scan() {
				text := strings.TrimSpace(in.Text())
				if text == "q" {
					return nil
				}
				n, convErr := strconv.Atoi(text)
				if convErr != nil || n < 1 || n > len(q.Options) {
					cmd.Printf("pick 1-%d\n", len(q.Options))
					continue
				}
				if _, _, err := s.AnswerQuiz(ctx, q.Generation, q.Options[n-1]); err != nil {
					return err
				}
				if q, err = s.NextQuiz(ctx); err != nil {
					return err
				}
			}
			return in.Err()
		})
	},
}

var practiceTypeCmd = &cobra.Command{
	Use:   "type",
	Short: "Typed answers: write the meaning, an empty line skips, q quits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, func(ctx context.Context, s *usecase.Session, in *bufio.Scanner) error {
			p, err := s.NextTyping(ctx)
			if err != nil || p.State == usecase.StateUnavailable {
				return err
			}
			for in.Scan() {
				text := strings.TrimSpace(in.Text())
				if text == "q" {
					return nil
				}
				if text != "" {
					if _, _, err := s.SubmitTyping(ctx, p.Generation, text); err != nil {
						return err
					}
				}
				if p, err = s.NextTyping(ctx); err != nil {
					return err
				}
			}
			return in.Err()
		})
	},
}

// runPractice starts a session that renders to the terminal and advances only on input.
func runPractice(cmd *cobra.Command, loop func(ctx context.Context, s *usecase.Session, in *bufio.Scanner) error) error {
	extra := app.SessionOptions{
		usecase.WithAutoAdvance(nil, 0),
		usecase.WithView(consoleView(cmd.OutOrStdout())),
	}
	return withContainer(extra, func(c *app.Container) error {
		if err := loop(cmd.Context(), c.Session, bufio.NewScanner(cmd.InOrStdin())); err != nil {
			return err
		}
		d, err := c.Session.Dashboard(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("\nXP %d, level %d, today %d/%d correct\n", d.Stats.XP, d.Level, d.Challenge.Correct, d.Challenge.Target)
		return nil
	})
}

func init() {
	rootCmd.AddCommand(practiceCmd)
	practiceCmd.AddCommand(practiceFlashCmd, practiceQuizCmd, practiceTypeCmd)
}
