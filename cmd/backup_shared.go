package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/lingualatina/internal/usecase/backup"
)

// bindFlagToViper lets a flag override the configured value of key, but only when it is set.
func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

type cliProgress struct {
	out         io.Writer
	totals      map[backup.Kind]int
	counts      map[backup.Kind]int
	lastPrinted map[backup.Kind]int
}

var _ backup.ProgressReporter = (*cliProgress)(nil)

func newCLIProgress(out io.Writer) *cliProgress {
	return &cliProgress{
		out:         out,
		totals:      make(map[backup.Kind]int),
		counts:      make(map[backup.Kind]int),
		lastPrinted: make(map[backup.Kind]int),
	}
}

func (p *cliProgress) StartCollection(kind backup.Kind, total int) {
	p.totals[kind] = max(total, 0)
	p.counts[kind] = 0
	p.lastPrinted[kind] = 0
	fmt.Fprintf(p.out, "importing %s (%d records)\n", kind, p.totals[kind])
}

func (p *cliProgress) Increment(kind backup.Kind, delta int) {
	if delta <= 0 {
		return
	}
	current := p.counts[kind] + delta
	p.counts[kind] = current
	total := p.totals[kind]
	if current == total || current-p.lastPrinted[kind] >= progressStep(total) {
		fmt.Fprintf(p.out, "  %s: %d/%d\n", kind, current, total)
		p.lastPrinted[kind] = current
	}
}

func (p *cliProgress) FinishCollection(kind backup.Kind) {
	fmt.Fprintf(p.out, "done %s: %d records read\n", kind, p.counts[kind])
	delete(p.counts, kind)
	delete(p.totals, kind)
	delete(p.lastPrinted, kind)
}

func progressStep(total int) int {
	return min(max(total/20, 1), 1000)
}
