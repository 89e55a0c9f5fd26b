package histogram

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// DefaultDisplayWidth is the bar length, in cells, of the largest bucket.
const DefaultDisplayWidth = 80

const (
	fullBlock   = "█"
	labelWidth  = 7
	eighths     = 8
	lowerLabel  = "-inf"
	upperLabel  = "inf"
	labelFormat = "%7.3f"
)

// partialBlocks holds the glyph for 1/8 through 7/8 of a cell.
var partialBlocks = [eighths]string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// Render writes one line per bucket: the underflow sentinel, every regular
// bucket labelled by its lower edge, then the overflow sentinel. Each line is
// "<label> │<bar> <count>", with the bar scaled so the fullest bucket spans width cells.
func Render(w io.Writer, h *Histogram, width int) error {
	rows := h.Rows()

	var maxCount uint64
	for _, row := range rows {
		maxCount = max(maxCount, row.Count)
	}

	for i, row := range rows {
		label := fmt.Sprintf(labelFormat, row.Lower)

		switch i {
		case 0:
			label = lowerLabel
		case len(rows) - 1:
			label = upperLabel
		}

		_, err := fmt.Fprintf(w, "%*s │%s %d\n", labelWidth, label, Bar(row.Count, maxCount, width), row.Count)
		if err != nil {
			return fmt.Errorf("render bucket %d: %w", i, err)
		}
	}

	return nil
}

// Bar draws count scaled against maxCount over width cells: whole blocks
// followed by one partial block for the remaining fraction of a cell.
func Bar(count, maxCount uint64, width int) string {
	if maxCount == 0 || count == 0 || width <= 0 {
		return ""
	}

	cells := float64(width) * float64(count) / float64(maxCount)
	whole, frac := math.Modf(cells)

	var sb strings.Builder

	sb.WriteString(strings.Repeat(fullBlock, int(whole)))
	sb.WriteString(partialBlock(frac))

	return sb.String()
}

// partialBlock returns the glyph for frac of a cell. Fractions up to 1/8 draw
// nothing; a glyph is picked when frac strictly exceeds its eighth.
func partialBlock(frac float64) string {
	for k := eighths - 1; k > 0; k-- {
		if frac > float64(k)/eighths {
			return partialBlocks[k]
		}
	}

	return ""
}
