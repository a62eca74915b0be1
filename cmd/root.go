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
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingualatina/internal/app"
)

var rootCmd = &cobra.Command{
	Use:          "lingua",
	Short:        "Latin vocabulary trainer: collection, practice and progress",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("storage-driver", "", "storage backend: memory, file, sqlite3, postgres, redis")
	rootCmd.PersistentFlags().String("storage-path", "", "directory of the file store or the sqlite database")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	bindFlagToViper("storage.driver", rootCmd.PersistentFlags().Lookup("storage-driver"))
	bindFlagToViper("storage.path", rootCmd.PersistentFlags().Lookup("storage-path"))
	bindFlagToViper("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// withContainer builds the application for one command run and tears it down afterwards.
func withContainer(extra app.SessionOptions, fn func(*app.Container) error) error {
	container, cleanup, err := app.Initialize(extra)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(container)
}
