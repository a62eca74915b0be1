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
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/lingualatina/internal/app"
	"github.com/eslsoft/lingualatina/internal/entity"
	"github.com/eslsoft/lingualatina/internal/usecase/backup"
)

const (
	importInputKey   = "backup.import.input"
	importGzipKey    = "backup.import.gzip"
	importReplaceKey = "backup.import.replace"
	importKindKey    = "backup.import.kind"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Merge a JSON backup or word list into the collection",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		inputPath := viper.GetString(importInputKey)
		gzipEnabled := viper.GetBool(importGzipKey)
		replace := viper.GetBool(importReplaceKey)

		if inputPath == "" {
			return fmt.Errorf("an input file is required (--input, - for stdin)")
		}
		if !gzipEnabled && inputPath != "-" && strings.HasSuffix(strings.ToLower(inputPath), ".gz") {
			gzipEnabled = true
		}
		kind, ok := backup.ParseKind(viper.GetString(importKindKey))
		if !ok {
			return fmt.Errorf("unknown collection kind %q", viper.GetString(importKindKey))
		}

		var (
			reader  io.Reader = cmd.InOrStdin()
			closers []func() error
		)

		if inputPath != "-" {
			file, openErr := os.Open(filepath.Clean(inputPath))
			if openErr != nil {
				return fmt.Errorf("open backup file: %w", openErr)
			}
			reader = file
			closers = append(closers, file.Close)
		}

		if gzipEnabled {
			gzr, gzErr := gzip.NewReader(reader)
			if gzErr != nil {
				for _, closer := range closers {
					_ = closer()
				}
				return fmt.Errorf("create gzip reader: %w", gzErr)
			}
			reader = gzr
			closers = append([]func() error{gzr.Close}, closers...)
		}

		defer func() {
			for _, closer := range closers {
				if cerr := closer(); cerr != nil && err == nil {
					err = cerr
				}
			}
		}()

		importOpts := []backup.ImportOption{
			backup.WithImportKind(kind),
			backup.WithProgressReporter(newCLIProgress(cmd.ErrOrStderr())),
		}
		if replace {
			importOpts = append(importOpts, backup.WithReplace())
		}

		return withContainer(nil, func(c *app.Container) error {
			var result backup.ImportResult
			mutateErr := c.Session.Mutate(ctx, func(st *entity.AppState) error {
				var importErr error
				result, importErr = c.Backup.Import(ctx, reader, st, importOpts...)
				return importErr
			})
			if mutateErr != nil {
				return fmt.Errorf("import backup: %w", mutateErr)
			}

			if result.Replaced {
				cmd.Printf("state replaced: %d words, %d rules, %d idioms\n", result.Words, result.Rules, result.Idioms)
				return nil
			}
			cmd.Printf("imported %d entries (words %d, rules %d, idioms %d)\n", result.Total(), result.Words, result.Rules, result.Idioms)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "", "backup file path, - for stdin")
	importCmd.Flags().Bool("gzip", false, "input is gzip compressed")
	importCmd.Flags().Bool("replace", false, "replace the whole state instead of merging")
	importCmd.Flags().String("kind", string(backup.KindWords), "collection of a bare JSON array: words, rules or idioms")

	bindImportConfig()
}

func bindImportConfig() {
	bindFlagToViper(importInputKey, importCmd.Flags().Lookup("input"))
	bindFlagToViper(importGzipKey, importCmd.Flags().Lookup("gzip"))
	bindFlagToViper(importReplaceKey, importCmd.Flags().Lookup("replace"))
	bindFlagToViper(importKindKey, importCmd.Flags().Lookup("kind"))
}
