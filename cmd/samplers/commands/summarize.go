package commands

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/samplers/internal/config"
	"github.com/Sumatoshi-tech/samplers/internal/report"
	"github.com/Sumatoshi-tech/samplers/pkg/alg/stats"
	"github.com/Sumatoshi-tech/samplers/pkg/stream"
)

// SummarizeCommand reports every moment statistic of a stream.
type SummarizeCommand struct {
	format string
}

// NewSummarizeCommand creates the summarize command.
func NewSummarizeCommand() *cobra.Command {
	sc := &SummarizeCommand{}

	cmd := &cobra.Command{
		Use:   "summarize [file...]",
		Short: "Print count, extrema and moments of the numbers in the files or on stdin",
		Args:  cobra.ArbitraryArgs,
		RunE:  sc.run,
	}

	cmd.Flags().StringVarP(&sc.format, "format", "f", config.DefaultSummaryFormat,
		"Output format: "+strings.Join(config.Formats, ", "))

	return cmd
}

func (sc *SummarizeCommand) run(cmd *cobra.Command, args []string) error {
	return instrument(cmd, func(ctx context.Context, rt *Runtime) (uint64, error) {
		format := rt.Config.Summary.Format
		if cmd.Flags().Changed("format") {
			format = sc.format
		}

		if !slices.Contains(config.Formats, format) {
			return 0, fmt.Errorf("%w: %q", config.ErrInvalidFormat, format)
		}

		m, err := accumulate(cmd, args)
		if err != nil {
			return m.Count(), err
		}

		rt.Logger.DebugContext(ctx, "summarizing", "format", format)

		return m.Count(), report.WriteSummary(cmd.OutOrStdout(), stats.Summarize(m), format)
	})
}

// stdinName names standard input among file arguments.
const stdinName = "-"

// accumulate folds the numbers of every named input into one Moments; with no
// arguments it reads stdin. Each input is accumulated on its own and merged.
func accumulate(cmd *cobra.Command, args []string) (*stats.Moments, error) {
	if len(args) == 0 {
		args = []string{stdinName}
	}

	total := &stats.Moments{}

	for _, name := range args {
		part, err := accumulateInput(cmd, name)
		total.Merge(part)

		if err != nil {
			return total, err
		}
	}

	return total, nil
}

func accumulateInput(cmd *cobra.Command, name string) (*stats.Moments, error) {
	m := &stats.Moments{}
	src := cmd.InOrStdin()

	if name != stdinName {
		f, err := os.Open(name)
		if err != nil {
			return m, fmt.Errorf("open input: %w", err)
		}

		defer f.Close()

		src = f
	}

	err := stream.NewReader(src).Each(func(v float64) error {
		m.Add(v)

		return nil
	})
	if err != nil && name != stdinName {
		return m, fmt.Errorf("%s: %w", name, err)
	}

	return m, err
}
