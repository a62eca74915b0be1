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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/lingualatina/internal/app"
	"github.com/eslsoft/lingualatina/internal/usecase/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate TEXT...",
	Short: "Translate between Russian and Latin",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("dir")
		dir, ok := translate.ParseDirection(raw)
		if !ok {
			return fmt.Errorf("unsupported direction %q (ru-la or la-ru)", raw)
		}
		if offline, _ := cmd.Flags().GetBool("offline"); offline {
			viper.Set("translate.enabled", false)
		}

		return withContainer(nil, func(c *app.Container) error {
			res := c.Translator.Translate(cmd.Context(), strings.Join(args, " "), dir)
			if res.Source == translate.SourceNone {
				cmd.Println("no translation found")
				return nil
			}
			cmd.Printf("%s  [%s]\n", res.Translation, res.Source)
			if len(res.Variants) > 0 {
				cmd.Printf("also: %s\n", strings.Join(res.Variants, ", "))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().String("dir", string(translate.RussianToLatin), "ru-la or la-ru")
	translateCmd.Flags().Bool("offline", false, "skip the remote provider")
}
