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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingualatina/internal/app"
)

var goalCmd = &cobra.Command{
	Use:   "goal N",
	Short: "Set the daily number of new words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("goal must be a number: %w", err)
		}
		challenge, _ := cmd.Flags().GetInt("challenge")

		return withContainer(nil, func(c *app.Container) error {
			if err := c.Session.SetGoal(cmd.Context(), goal); err != nil {
				return err
			}
			if challenge > 0 {
				if err := c.Session.SetChallengeTarget(cmd.Context(), challenge); err != nil {
					return err
				}
			}
			cmd.Printf("daily goal set to %d\n", goal)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.Flags().Int("challenge", 0, "also set the daily correct-answer target")
}
