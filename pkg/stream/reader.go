// Package stream implements the line-oriented numeric protocol shared by every
// samplers subcommand: one decimal value per line in, one per line out.
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// ErrEmptyLine is wrapped by a [ParseError] for a blank or whitespace-only line.
var ErrEmptyLine = errors.New("empty line")

// ParseError reports an input line that is not a decimal number.
type ParseError struct {
	Err  error
	Text string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %q as a number: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reader pulls float64 observations from a line-oriented stream.
//
// Usage mirrors [bufio.Scanner]:
//
//	for r.Scan() {
//		use(r.Value())
//	}
//	if err := r.Err(); err != nil { ... }
type Reader struct {
	scanner *bufio.Scanner
	err     error
	text    string
	value   float64
	line    int
}

// NewReader returns a Reader over src.
func NewReader(src io.Reader) *Reader {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	return &Reader{scanner: scanner}
}

// Scan advances to the next value. It returns false at end of input or on the
// first error; a premature close of the source is an ordinary end of input.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	if !r.scanner.Scan() {
		scanErr := r.scanner.Err()
		if scanErr != nil {
			r.err = fmt.Errorf("read input: %w", scanErr)
		}

		return false
	}

	r.line++
	r.text = strings.TrimSpace(r.scanner.Text())

	if r.text == "" {
		r.err = &ParseError{Line: r.line, Text: r.scanner.Text(), Err: ErrEmptyLine}

		return false
	}

	v, parseErr := strconv.ParseFloat(r.text, 64)
	if parseErr != nil {
		r.err = &ParseError{Line: r.line, Text: r.text, Err: unwrapNumError(parseErr)}

		return false
	}

	r.value = v

	return true
}

// Value returns the most recently scanned value.
func (r *Reader) Value() float64 {
	return r.value
}

// Text returns the trimmed source text of the most recently scanned value.
func (r *Reader) Text() string {
	return r.text
}

// Err returns the first error encountered, or nil at a clean end of input.
func (r *Reader) Err() error {
	return r.err
}

// Each calls fn for every value until the input ends, fn fails, or a line
// fails to parse.
func (r *Reader) Each(fn func(v float64) error) error {
	for r.Scan() {
		fnErr := fn(r.value)
		if fnErr != nil {
			return fnErr
		}
	}

	return r.Err()
}

func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}

	return err
}
