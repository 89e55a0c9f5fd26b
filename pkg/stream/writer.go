package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"syscall"
)

// Writer emits one value per line through a buffer. Call Flush when done.
type Writer struct {
	buf     *bufio.Writer
	scratch []byte
}

// NewWriter returns a Writer over dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriter(dst)}
}

// WriteValue writes v followed by a newline.
func (w *Writer) WriteValue(v float64) error {
	w.scratch = strconv.AppendFloat(w.scratch[:0], v, 'g', -1, 64)
	w.scratch = append(w.scratch, '\n')

	_, err := w.buf.Write(w.scratch)
	if err != nil {
		return fmt.Errorf("write value: %w", err)
	}

	return nil
}

// WriteInt writes the integer v followed by a newline.
func (w *Writer) WriteInt(v int64) error {
	w.scratch = strconv.AppendInt(w.scratch[:0], v, 10)
	w.scratch = append(w.scratch, '\n')

	_, err := w.buf.Write(w.scratch)
	if err != nil {
		return fmt.Errorf("write value: %w", err)
	}

	return nil
}

// WriteText writes s verbatim followed by a newline.
func (w *Writer) WriteText(s string) error {
	_, err := w.buf.WriteString(s)
	if err == nil {
		err = w.buf.WriteByte('\n')
	}

	if err != nil {
		return fmt.Errorf("write value: %w", err)
	}

	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	err := w.buf.Flush()
	if err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}

// IsClosedPipe reports whether err means the downstream reader went away.
// Such errors end a pipeline stage normally.
func IsClosedPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
