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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingualatina/internal/app"
	"github.com/eslsoft/lingualatina/internal/entity"
)

var idiomCmd = &cobra.Command{
	Use:   "idiom",
	Short: "Manage set phrases",
}

var idiomAddCmd = &cobra.Command{
	Use:   "add LATIN LITERAL MEANING",
	Short: "Add a set phrase with its literal and idiomatic translation",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(nil, func(c *app.Container) error {
			i, err := c.Session.AddIdiom(cmd.Context(), entity.Idiom{Latin: args[0], Literal: args[1], Meaning: args[2]})
			if err != nil {
				return err
			}
			cmd.Printf("added idiom %s (%s)\n", i.Latin, i.ID)
			return nil
		})
	},
}

var idiomListCmd = &cobra.Command{
	Use:   "list [KEYWORD]",
	Short: "List set phrases",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(nil, func(c *app.Container) error {
			idioms, err := c.Session.ListIdioms(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLATIN\tLITERAL\tMEANING")
			for _, i := range idioms {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", i.ID, i.Latin, i.Literal, i.Meaning)
			}
			return tw.Flush()
		})
	},
}

var idiomRemoveCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a set phrase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(nil, func(c *app.Container) error {
			if err := c.Session.RemoveIdiom(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("removed %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(idiomCmd)
	idiomCmd.AddCommand(idiomAddCmd, idiomListCmd, idiomRemoveCmd)
}
