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

var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage grammar notes",
}

var ruleAddCmd = &cobra.Command{
	Use:   "add TITLE CATEGORY NOTE",
	Short: "Add a grammar note",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(nil, func(c *app.Container) error {
			r, err := c.Session.AddRule(cmd.Context(), entity.Rule{Title: args[0], Category: args[1], Note: args[2]})
			if err != nil {
				return err
			}
			cmd.Printf("added rule %s (%s)\n", r.Title, r.ID)
			return nil
		})
	},
}

var ruleListCmd = &cobra.Command{
	Use:   "list [KEYWORD]",
	Short: "List grammar notes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(nil, func(c *app.Container) error {
			rules, err := c.Session.ListRules(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tNOTE")
			for _, r := range rules {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Category, r.Note)
			}
			return tw.Flush()
		})
	},
}

var ruleRemoveCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a grammar note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(nil, func(c *app.Container) error {
			if err := c.Session.RemoveRule(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("removed %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(ruleCmd)
	ruleCmd.AddCommand(ruleAddCmd, ruleListCmd, ruleRemoveCmd)
}
