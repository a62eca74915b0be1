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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingualatina/internal/app"
	"github.com/eslsoft/lingualatina/internal/entity"
	"github.com/eslsoft/lingualatina/internal/repository"
)

var wordCmd = &cobra.Command{
	Use:   "word",
	Short: "Manage the word collection",
}

var wordAddCmd = &cobra.Command{
	Use:   "add LATIN MEANING",
	Short: "Add a word",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		example, _ := flags.GetString("example")
		difficulty, _ := flags.GetString("difficulty")
		pos, _ := flags.GetString("pos")
		tags, _ := flags.GetString("tags")

		return withContainer(nil, func(c *app.Container) error {
			w, err := c.Session.AddWord(cmd.Context(), entity.Word{
				Latin:        args[0],
				Meaning:      args[1],
				Example:      example,
				Difficulty:   entity.Difficulty(difficulty),
				PartOfSpeech: entity.PartOfSpeech(pos),
				Tags:         entity.ParseTags(tags),
			})
			if err != nil {
				return err
			}
			cmd.Printf("added %s = %s (%s)\n", w.Latin, w.Meaning, w.ID)
			return nil
		})
	},
}

var wordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List words, optionally filtered",
	Example: `  lingua word list --filter "learned == false && difficulty in ['hard', 'medium']"
  lingua word list --filter "keyword == 'aqu'" --order-by "latin asc"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		filter, _ := flags.GetString("filter")
		orderBy, _ := flags.GetString("order-by")
		page, _ := flags.GetInt32("page")
		size, _ := flags.GetInt32("page-size")

		return withContainer(nil, func(c *app.Container) error {
			words, total, err := c.Session.ListWords(cmd.Context(), &repository.ListWordQuery{
				Pagination:  repository.Pagination{PageNo: page, PageSize: size},
				FilterOrder: repository.FilterOrder{Filter: filter, OrderBy: orderBy},
			})
			if err != nil {
				return err
			}
			printWords(cmd.OutOrStdout(), words)
			cmd.Printf("%d of %d words\n", len(words), total)
			return nil
		})
	},
}

var wordRemoveCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(nil, func(c *app.Container) error {
			if err := c.Session.RemoveWord(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("removed %s\n", args[0])
			return nil
		})
	},
}

var wordLearnCmd = &cobra.Command{
	Use:   "learn ID",
	Short: "Toggle the learned flag of a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(nil, func(c *app.Container) error {
			w, err := c.Session.ToggleLearned(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s learned: %t\n", w.Latin, w.Learned)
			return nil
		})
	},
}

func printWords(out io.Writer, words []entity.Word) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLATIN\tMEANING\tDIFFICULTY\tPOS\tTAGS\tLEARNED")
	for _, w := range words {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			w.ID, w.Latin, w.Meaning, w.Difficulty, w.PartOfSpeech, strings.Join(w.Tags, ","), w.Learned)
	}
	_ = tw.Flush()
}

func init() {
	rootCmd.AddCommand(wordCmd)
	wordCmd.AddCommand(wordAddCmd, wordListCmd, wordRemoveCmd, wordLearnCmd)

	wordAddCmd.Flags().String("example", "", "usage example")
	wordAddCmd.Flags().String("difficulty", string(entity.DifficultyMedium), "easy, medium or hard")
	wordAddCmd.Flags().String("pos", string(entity.PartOfSpeechNoun), "part of speech")
	wordAddCmd.Flags().String("tags", "", "comma separated tags")

	wordListCmd.Flags().String("filter", "", "CEL filter over keyword, learned, difficulty, pos, tag, latin, created_at")
	wordListCmd.Flags().String("order-by", "", "order, e.g. \"latin asc\" (default created_at desc)")
	wordListCmd.Flags().Int32("page", 1, "page number")
	wordListCmd.Flags().Int32("page-size", 50, "page size")
}
