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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingualatina/internal/app"
	"github.com/eslsoft/lingualatina/internal/usecase"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress, streak, level and achievements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(nil, func(c *app.Container) error {
			d, err := c.Session.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			printDashboard(cmd.OutOrStdout(), d)
			return nil
		})
	},
}

func printDashboard(out io.Writer, d usecase.Dashboard) {
	fmt.Fprintf(out, "%s\n", d.Date)
	fmt.Fprintf(out, "words    %d (%d learned, %d%%)\n", d.TotalWords, d.LearnedWords, d.LearnedPercent)
	fmt.Fprintf(out, "rules    %d, idioms %d\n", d.TotalRules, d.TotalIdioms)
	fmt.Fprintf(out, "today    %d/%d added (%d%%)\n", d.TodayAdded, d.Goal, d.GoalPercent)
	fmt.Fprintf(out, "streak   %d days\n", d.Streak)
	fmt.Fprintf(out, "XP       %d, level %d (%d%% to next)\n", d.Stats.XP, d.Level, d.LevelProgress)
	fmt.Fprintf(out, "answers  %d correct, %d quizzes, %d typed, current run %d\n",
		d.Stats.CorrectAnswers, d.Stats.QuizzesTaken, d.Stats.TypingCorrect, d.Stats.AnswerStreak)
	claimed := ""
	if d.Challenge.Claimed {
		claimed = " (bonus claimed)"
	}
	fmt.Fprintf(out, "challenge %d/%d correct today%s\n", d.Challenge.Correct, d.Challenge.Target, claimed)
	for _, a := range d.Achievements {
		mark := " "
		if a.Unlocked {
			mark = "x"
		}
		fmt.Fprintf(out, "  [%s] %s %d/%d\n", mark, a.Title, a.Progress, a.Target)
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
