// Package report renders moment summaries and histograms for the terminal
// and for machine consumers.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/samplers/internal/config"
	"github.com/Sumatoshi-tech/samplers/pkg/alg/stats"
	"github.com/Sumatoshi-tech/samplers/pkg/histogram"
	"github.com/Sumatoshi-tech/samplers/pkg/safeconv"
)

// ErrUnknownFormat is returned for a summary format outside [config.Formats].
var ErrUnknownFormat = errors.New("unknown report format")

const (
	headerStatistic = "Statistic"
	headerValue     = "Value"
)

// WriteSummary writes s to w in the named format.
func WriteSummary(w io.Writer, s stats.Summary, format string) error {
	switch format {
	case config.FormatText:
		_, err := s.WriteTo(w)

		return err
	case config.FormatTable:
		return writeTable(w, s)
	case config.FormatJSON:
		return writeJSON(w, s)
	case config.FormatYAML:
		return writeYAML(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteHistogram writes the text summary followed by the chart.
// An empty stream has no chart.
func WriteHistogram(w io.Writer, res histogram.Result, width int) error {
	_, err := res.Summary.WriteTo(w)
	if err != nil {
		return err
	}

	if res.Histogram == nil {
		return nil
	}

	return histogram.Render(w, res.Histogram, width)
}

func writeTable(w io.Writer, s stats.Summary) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.AppendHeader(table.Row{headerStatistic, headerValue})

	for _, f := range s.Fields() {
		value := f.Value
		if f.Label == stats.LabelCount {
			value = humanize.Comma(safeconv.SaturateUint64ToInt64(s.Count))
		}

		tbl.AppendRow(table.Row{f.Label, value})
	}

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

func writeJSON(w io.Writer, s stats.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(s)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, s stats.Summary) error {
	enc := yaml.NewEncoder(w)

	err := enc.Encode(s)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}
