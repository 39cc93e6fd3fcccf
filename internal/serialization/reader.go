package serialization

import (
	"encoding/binary"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// byteStream is what the reader consumes: whole blobs through Read and
// header lines one byte at a time.
type byteStream interface {
	io.Reader
	io.ByteReader
}

// singleByteReader adapts a plain io.Reader without reading ahead, so that a
// document embedded in a larger stream leaves the bytes after it untouched.
type singleByteReader struct {
	r   io.Reader
	buf [1]byte
}

func (s *singleByteReader) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *singleByteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, err
	}
	return s.buf[0], nil
}

// Reader parses records of the network format from a stream.
//
// The reader never consumes input beyond the record it was asked for. Any
// premature end of input is reported as ErrMalformedRecord; other stream
// failures as ErrIO.
type Reader struct {
	r byteStream
}

// NewReader creates a record reader on top of r. Readers that already
// implement io.ByteReader (bufio.Reader, bytes.Reader, ...) are used as-is.
func NewReader(r io.Reader) *Reader {
	bs, ok := r.(byteStream)
	if !ok {
		bs = &singleByteReader{r: r}
	}
	return &Reader{r: bs}
}

// Keyword consumes a line and checks that it is exactly keyword.
func (r *Reader) Keyword(keyword string) error {
	line, err := r.line(keyword)
	if err != nil {
		return err
	}
	if line != keyword {
		return malformed(keyword, "", "expected keyword, got %q", line)
	}
	return nil
}

// IntField consumes a "<name> <value>" line belonging to record and returns
// the value.
func (r *Reader) IntField(record, name string) (int, error) {
	line, err := r.line(record)
	if err != nil {
		return 0, err
	}
	field, value, ok := strings.Cut(line, " ")
	if !ok || field != name {
		return 0, malformed(record, name, "expected field, got %q", line)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, malformed(record, name, "invalid integer %q", value)
	}
	return n, nil
}

// Float64Blob consumes a "data " prefix followed by count little-endian
// float64 values and the terminating newline.
func (r *Reader) Float64Blob(record string, count int) ([]float64, error) {
	prefix := make([]byte, len(FieldData)+1)
	if err := r.full(prefix, record); err != nil {
		return nil, err
	}
	if string(prefix) != FieldData+" " {
		return nil, malformed(record, FieldData, "expected %q, got %q", FieldData+" ", prefix)
	}

	// Grow with the data actually present rather than trusting count.
	values := make([]float64, 0, max(min(count, 1024), 0))
	var buf [Float64Size]byte
	for i := 0; i < count; i++ {
		if err := r.full(buf[:], record); err != nil {
			return nil, errors.Wrapf(err, "value %d of %d", i, count)
		}
		values = append(values, math.Float64frombits(binary.LittleEndian.Uint64(buf[:])))
	}

	c, err := r.byte(record)
	if err != nil {
		return nil, err
	}
	if c != '\n' {
		return nil, malformed(record, FieldData, "blob longer than %d values", count)
	}
	return values, nil
}

// End consumes the newline that terminates a document.
func (r *Reader) End() error {
	c, err := r.byte("document end")
	if err != nil {
		return err
	}
	if c != '\n' {
		return malformed("document end", "", "expected newline, got %q", c)
	}
	return nil
}

func (r *Reader) line(record string) (string, error) {
	var sb strings.Builder
	for {
		c, err := r.byte(record)
		if err != nil {
			return "", err
		}
		if c == '\n' {
			return sb.String(), nil
		}
		if sb.Len() >= maxFieldLine {
			return "", malformed(record, "", "line exceeds %d bytes", maxFieldLine)
		}
		sb.WriteByte(c)
	}
}

func (r *Reader) byte(record string) (byte, error) {
	c, err := r.r.ReadByte()
	if err != nil {
		return 0, r.failure(err, record)
	}
	return c, nil
}

func (r *Reader) full(p []byte, record string) error {
	if _, err := io.ReadFull(r.r, p); err != nil {
		return r.failure(err, record)
	}
	return nil
}

func (r *Reader) failure(err error, record string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return malformed(record, "", "unexpected end of stream")
	}
	return errors.WithStack(&IOError{Op: "read " + record, Err: err})
}
