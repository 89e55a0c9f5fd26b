package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/samplers/internal/config"
	"github.com/Sumatoshi-tech/samplers/internal/report"
	"github.com/Sumatoshi-tech/samplers/pkg/histogram"
	"github.com/Sumatoshi-tech/samplers/pkg/safeconv"
	"github.com/Sumatoshi-tech/samplers/pkg/stream"
)

// ErrPartialBounds is returned when only one of --min and --max is given.
var ErrPartialBounds = errors.New("--min and --max must be given together")

// binner is satisfied by both the buffering and the fixed-bounds histogram modes.
type binner interface {
	Observe(v float64)
	Count() uint64
	Finish() histogram.Result
}

// HistogramCommand bins a stream and draws the histogram.
type HistogramCommand struct {
	lower       float64
	upper       float64
	numBuckets  int
	displaySize int
	passthrough string
}

// NewHistogramCommand creates the histogram command.
func NewHistogramCommand() *cobra.Command {
	hc := &HistogramCommand{}

	cmd := &cobra.Command{
		Use:   "histogram",
		Short: "Summarize the numbers on stdin and draw their histogram",
		Long: `Summarize the numbers on stdin and draw their histogram.

Without --min and --max every value is buffered until the input ends and the
buckets span the observed range. With both bounds the histogram is filled in a
single pass; values outside the bounds land in the -inf and inf buckets.

When stdout is not a terminal the input is echoed to stdout and the report is
written to stderr, so the command can sit in the middle of a pipeline.`,
		Args: cobra.NoArgs,
		RunE: hc.run,
	}

	cmd.Flags().Float64Var(&hc.lower, "min", 0, "Lower histogram bound (requires --max)")
	cmd.Flags().Float64Var(&hc.upper, "max", 0, "Upper histogram bound (requires --min)")
	cmd.Flags().IntVarP(&hc.numBuckets, "num-buckets", "b", config.DefaultHistogramNumBuckets,
		"Number of buckets (0 = choose from the data)")
	cmd.Flags().IntVarP(&hc.displaySize, "display-size", "d", config.DefaultHistogramDisplaySize,
		"Bar length of the fullest bucket")
	cmd.Flags().StringVar(&hc.passthrough, "passthrough", config.DefaultHistogramPassthrough,
		"Echo input to stdout: "+strings.Join(config.PassthroughModes, ", "))

	return cmd
}

func (hc *HistogramCommand) run(cmd *cobra.Command, _ []string) error {
	return instrument(cmd, func(ctx context.Context, rt *Runtime) (uint64, error) {
		cfg, err := hc.resolve(cmd, rt.Config.Histogram)
		if err != nil {
			return 0, err
		}

		bins, err := hc.newBinner(cmd, cfg.NumBuckets)
		if err != nil {
			return 0, err
		}

		echo := shouldEcho(cfg.Passthrough, cmd.OutOrStdout())
		reportOut := cmd.OutOrStdout()

		var pass *passthrough
		if echo {
			_, live := bins.(*histogram.Streamer)
			pass = &passthrough{out: stream.NewWriter(cmd.OutOrStdout()), live: live}
			reportOut = cmd.ErrOrStderr()
		}

		rt.Logger.DebugContext(ctx, "binning", "passthrough", echo, "buckets", cfg.NumBuckets)

		reader := stream.NewReader(cmd.InOrStdin())
		for reader.Scan() {
			bins.Observe(reader.Value())

			err = pass.line(reader.Text())
			if err != nil {
				return bins.Count(), err
			}
		}

		err = reader.Err()
		if err != nil {
			return bins.Count(), err
		}

		err = pass.finish()
		if err != nil {
			return bins.Count(), err
		}

		if pass.stopped() {
			rt.Logger.DebugContext(ctx, "passthrough closed", "values", humanize.Comma(safeconv.SaturateUint64ToInt64(bins.Count())))
		}

		res := bins.Finish()
		if res.Histogram != nil {
			rt.Logger.DebugContext(ctx, "binned", "buckets", res.Histogram.Buckets(), "total", res.Histogram.Total())
		}

		return res.Summary.Count, report.WriteHistogram(reportOut, res, cfg.DisplaySize)
	})
}

// resolve layers explicitly set flags over the configured histogram settings.
func (hc *HistogramCommand) resolve(cmd *cobra.Command, base config.HistogramConfig) (config.HistogramConfig, error) {
	cfg := config.Config{Histogram: base}

	if cmd.Flags().Changed("num-buckets") {
		cfg.Histogram.NumBuckets = hc.numBuckets
	}

	if cmd.Flags().Changed("display-size") {
		cfg.Histogram.DisplaySize = hc.displaySize
	}

	if cmd.Flags().Changed("passthrough") {
		cfg.Histogram.Passthrough = hc.passthrough
	}

	err := cfg.ValidateHistogram()
	if err != nil {
		return config.HistogramConfig{}, err
	}

	return cfg.Histogram, nil
}

func (hc *HistogramCommand) newBinner(cmd *cobra.Command, buckets int) (binner, error) {
	hasMin := cmd.Flags().Changed("min")
	hasMax := cmd.Flags().Changed("max")

	switch {
	case hasMin && hasMax:
		s, err := histogram.NewStreamer(hc.lower, hc.upper, buckets)
		if err != nil {
			return nil, fmt.Errorf("histogram bounds: %w", err)
		}

		return s, nil
	case hasMin || hasMax:
		return nil, ErrPartialBounds
	default:
		return histogram.NewBinner(buckets), nil
	}
}

// shouldEcho decides whether input is copied to out. In auto mode input is
// echoed unless out is a terminal.
func shouldEcho(mode string, out io.Writer) bool {
	switch mode {
	case config.PassthroughAlways:
		return true
	case config.PassthroughNever:
		return false
	default:
		return !isTerminal(out)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// passthrough copies input lines to stdout. Unless live, lines are held until
// the whole input has parsed, so a bad line leaks nothing downstream. A closed
// stdout stops the copy without failing the run. A nil passthrough is a no-op.
type passthrough struct {
	out    *stream.Writer
	held   []string
	live   bool
	closed bool
}

func (p *passthrough) line(text string) error {
	switch {
	case p == nil || p.closed:
		return nil
	case p.live:
		return p.write(text)
	default:
		p.held = append(p.held, text)

		return nil
	}
}

func (p *passthrough) write(text string) error {
	err := p.out.WriteText(text)
	if err != nil && stream.IsClosedPipe(err) {
		p.closed = true

		return nil
	}

	return err
}

// finish writes any held lines and flushes.
func (p *passthrough) finish() error {
	if p == nil {
		return nil
	}

	for _, text := range p.held {
		if p.closed {
			break
		}

		err := p.write(text)
		if err != nil {
			return err
		}
	}

	p.held = nil

	if p.closed {
		return nil
	}

	err := p.out.Flush()
	if stream.IsClosedPipe(err) {
		p.closed = true

		return nil
	}

	return err
}

func (p *passthrough) stopped() bool {
	return p != nil && p.closed
}
