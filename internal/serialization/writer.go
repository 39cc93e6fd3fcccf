package serialization

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Writer writes records of the network format to a stream.
//
// Output is buffered; call Flush once the document is complete. The first
// failed write is sticky: every later call returns the same error.
type Writer struct {
	w       *bufio.Writer
	scratch []byte
	err     error
}

// NewWriter creates a record writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Keyword writes a record keyword on its own line.
func (w *Writer) Keyword(keyword string) error {
	w.scratch = append(w.scratch[:0], keyword...)
	w.scratch = append(w.scratch, '\n')
	return w.write(w.scratch, keyword)
}

// IntField writes a "<name> <value>" line.
func (w *Writer) IntField(name string, value int) error {
	w.scratch = append(w.scratch[:0], name...)
	w.scratch = append(w.scratch, ' ')
	w.scratch = strconv.AppendInt(w.scratch, int64(value), 10)
	w.scratch = append(w.scratch, '\n')
	return w.write(w.scratch, name)
}

// Float64Blob writes a "data " prefix, the raw little-endian values with no
// separators, and a terminating newline.
func (w *Writer) Float64Blob(values []float64) error {
	w.scratch = append(w.scratch[:0], FieldData...)
	w.scratch = append(w.scratch, ' ')
	for _, v := range values {
		w.scratch = binary.LittleEndian.AppendUint64(w.scratch, math.Float64bits(v))
	}
	w.scratch = append(w.scratch, '\n')
	return w.write(w.scratch, FieldData)
}

// End writes the newline that terminates a document.
func (w *Writer) End() error {
	return w.write([]byte{'\n'}, "document end")
}

// Flush writes any buffered data to the underlying stream.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.Flush(); err != nil {
		w.err = errors.WithStack(&IOError{Op: "flush", Err: err})
	}
	return w.err
}

// Err returns the first error encountered by the writer, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) write(p []byte, what string) error {
	if w.err != nil {
		return w.err
	}
	if _, err := w.w.Write(p); err != nil {
		w.err = errors.WithStack(&IOError{Op: "write " + what, Err: err})
	}
	return w.err
}
