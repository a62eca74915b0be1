package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/lingualatina/internal/usecase/backup"
)

func Test_bindFlagToViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	c := &cobra.Command{Use: "x"}
	c.Flags().String("input", "", "")
	bindFlagToViper("backup.import.input", c.Flags().Lookup("input"))
	bindFlagToViper("ignored", nil)

	viper.SetDefault("backup.import.input", "default.json")
	if got := viper.GetString("backup.import.input"); got != "default.json" {
		t.Fatalf("unset flag should not override: got %q", got)
	}
	if err := c.Flags().Set("input", "backup.json"); err != nil {
		t.Fatal(err)
	}
	if got := viper.GetString("backup.import.input"); got != "backup.json" {
		t.Fatalf("got %q want backup.json", got)
	}
}

func Test_cliProgress(t *testing.T) {
	var out bytes.Buffer
	p := newCLIProgress(&out)
	p.StartCollection(backup.KindWords, 3)
	p.Increment(backup.KindWords, 1)
	p.Increment(backup.KindWords, 0)
	p.Increment(backup.KindWords, 2)
	p.FinishCollection(backup.KindWords)

	text := out.String()
	for _, want := range []string{"importing words (3 records)", "words: 1/3", "words: 3/3", "done words: 3 records read"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output %q lacks %q", text, want)
		}
	}
}

func Test_progressStep(t *testing.T) {
	cases := map[int]int{0: 1, 10: 1, 400: 20, 1_000_000: 1000}
	for total, want := range cases {
		if got := progressStep(total); got != want {
			t.Fatalf("progressStep(%d) = %d want %d", total, got, want)
		}
	}
}
