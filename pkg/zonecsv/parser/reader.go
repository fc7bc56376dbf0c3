package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/transform"
)

// readBufferSize bounds how far ahead the reader looks for the header's line terminator.
const readBufferSize = 64 * 1024

// ErrNoHeader indicates the source contains no header row.
var ErrNoHeader = errors.New("no header row")

// ErrMalformedRow indicates a data row that cannot be mapped onto the header.
var ErrMalformedRow = errors.New("malformed row")

// RowError describes a malformed data row.
type RowError struct {
	// Line is the 1-based line where the row starts.
	Line int
	// Got is the number of fields found (0 when the row could not be parsed).
	Got int
	// Want is the number of header fields.
	Want int
	// Err is the underlying parse error, if any.
	Err error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %v: %v", e.Line, ErrMalformedRow, e.Err)
	}
	return fmt.Sprintf("line %d: %v: got %d fields, want %d", e.Line, ErrMalformedRow, e.Got, e.Want)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformedRow as a match so callers can use errors.Is.
func (e *RowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// ReaderOptions configures how a source is decoded.
type ReaderOptions struct {
	// Encoding is a WHATWG label. Empty means UTF-8.
	Encoding string
}

// Reader streams a header followed by data rows whose width matches the header.
type Reader struct {
	csv    *csv.Reader
	header []string
	hasBOM bool
	crlf   bool
	rows   int
	line   int
}

// NewReader wraps r. It detects a leading UTF-8 BOM and the terminator of the
// first line without consuming any CSV content.
func NewReader(r io.Reader, opts ReaderOptions) (*Reader, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	br := bufio.NewReaderSize(r, readBufferSize)
	rd := &Reader{}

	if enc == nil {
		if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
			_, _ = br.Discard(len(utf8BOM))
			rd.hasBOM = true
		}
	}

	// Peek errors are reported again by the first Read.
	ahead, _ := br.Peek(readBufferSize)
	if idx := bytes.IndexByte(ahead, '\n'); idx > 0 && ahead[idx-1] == '\r' {
		rd.crlf = true
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	rd.csv = cr
	return rd, nil
}

// ReadHeader reads the header row. It returns ErrNoHeader for an empty source.
func (r *Reader) ReadHeader() ([]string, error) {
	if r.header != nil {
		return r.header, nil
	}
	rec, err := r.csv.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, classify(err, 1)
	}
	r.header = rec
	return rec, nil
}

// Read returns the next data row, or io.EOF after the last one.
// A row whose field count differs from the header yields a *RowError.
func (r *Reader) Read() ([]string, error) {
	if r.header == nil {
		if _, err := r.ReadHeader(); err != nil {
			return nil, err
		}
	}
	rec, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, classify(err, 0)
	}
	line, _ := r.csv.FieldPos(0)
	r.line = line
	if len(rec) != len(r.header) {
		return nil, &RowError{Line: line, Got: len(rec), Want: len(r.header)}
	}
	r.rows++
	return rec, nil
}

// HasBOM reports whether the source started with a UTF-8 byte order mark.
func (r *Reader) HasBOM() bool {
	return r.hasBOM
}

// CRLF reports whether the first line of the source ended in "\r\n".
func (r *Reader) CRLF() bool {
	return r.crlf
}

// Rows returns the number of data rows read so far.
func (r *Reader) Rows() int {
	return r.rows
}

// Line returns the line on which the last data row started.
func (r *Reader) Line() int {
	return r.line
}

// classify turns csv parse errors into RowErrors and leaves I/O errors alone.
func classify(err error, line int) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		if pe.StartLine > 0 {
			line = pe.StartLine
		}
		return &RowError{Line: line, Err: pe.Err}
	}
	return err
}
