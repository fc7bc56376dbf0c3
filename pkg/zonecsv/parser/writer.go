package parser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Quoting selects how the zone field is quoted on output.
type Quoting string

const (
	// QuoteMinimal quotes a field only when it contains a comma, a quote,
	// a line break or leading whitespace.
	QuoteMinimal Quoting = "minimal"
	// QuoteZone always quotes the zone field; other fields use minimal quoting.
	QuoteZone Quoting = "zone"
)

// Valid reports whether q is a known quoting policy.
func (q Quoting) Valid() bool {
	return q == QuoteMinimal || q == QuoteZone
}

// WriterOptions configures how rows are encoded.
type WriterOptions struct {
	// Encoding is a WHATWG label. Empty means UTF-8.
	Encoding string
	// BOM writes a UTF-8 byte order mark first. Ignored for other encodings.
	BOM bool
	// CRLF terminates lines with "\r\n" instead of "\n".
	CRLF bool
	// Quoting is the zone field policy. Empty means QuoteMinimal.
	Quoting Quoting
}

// Writer writes a header and rows with the configured quoting policy.
type Writer struct {
	buf     *bufio.Writer
	csv     *csv.Writer
	enc     io.WriteCloser
	quoting Quoting
	crlf    bool
}

// NewWriter wraps w. Close must be called to flush buffered output.
func NewWriter(w io.Writer, opts WriterOptions) (*Writer, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	quoting := opts.Quoting
	if quoting == "" {
		quoting = QuoteMinimal
	}
	if !quoting.Valid() {
		return nil, fmt.Errorf("unknown quoting policy %q", quoting)
	}

	out := &Writer{quoting: quoting, crlf: opts.CRLF}
	if enc != nil {
		out.enc = transform.NewWriter(w, enc.NewEncoder())
		w = out.enc
	}

	// csv.NewWriter reuses a *bufio.Writer of at least 4096 bytes, so raw
	// writes to buf and csv writes interleave in order.
	out.buf = bufio.NewWriterSize(w, readBufferSize)
	out.csv = csv.NewWriter(out.buf)
	out.csv.UseCRLF = opts.CRLF

	if opts.BOM && enc == nil {
		if _, err := out.buf.Write(utf8BOM); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteHeader writes the header row with minimal quoting.
func (w *Writer) WriteHeader(header []string) error {
	return w.writeMinimal(header)
}

// WriteRow writes one data row. The first field is the zone field.
func (w *Writer) WriteRow(row []string) error {
	if w.quoting == QuoteZone && len(row) > 0 {
		return w.writeRecord(row, true)
	}
	return w.writeMinimal(row)
}

// Close flushes all buffered output. It does not close the underlying writer.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	if w.enc != nil {
		return w.enc.Close()
	}
	return nil
}

func (w *Writer) writeMinimal(row []string) error {
	// A lone empty field would otherwise be written as a blank line,
	// which readers skip. csv.Writer drops a bare '\r' when UseCRLF is set.
	if (len(row) == 1 && row[0] == "") || (w.crlf && hasLoneCR(row)) {
		return w.writeRecord(row, false)
	}
	return w.csv.Write(row)
}

// writeRecord writes row with encoding/csv's minimal quoting rules, always
// quoting the first field when quoteFirst is set.
func (w *Writer) writeRecord(row []string, quoteFirst bool) error {
	for i, field := range row {
		if i > 0 {
			if err := w.buf.WriteByte(','); err != nil {
				return err
			}
		}
		var err error
		if (i == 0 && quoteFirst) || (len(row) == 1 && field == "") || fieldNeedsQuotes(field) {
			err = w.writeQuoted(field)
		} else {
			_, err = w.buf.WriteString(field)
		}
		if err != nil {
			return err
		}
	}
	return w.writeEOL()
}

func (w *Writer) writeQuoted(field string) error {
	var sb strings.Builder
	sb.Grow(len(field) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(field); i++ {
		switch c := field[i]; c {
		case '"':
			sb.WriteString(`""`)
		case '\r':
			// "\r\n" becomes a single CRLF below; a bare '\r' is data.
			if !w.crlf || i+1 == len(field) || field[i+1] != '\n' {
				sb.WriteByte(c)
			}
		case '\n':
			if w.crlf {
				sb.WriteString("\r\n")
			} else {
				sb.WriteByte(c)
			}
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	_, err := w.buf.WriteString(sb.String())
	return err
}

// fieldNeedsQuotes mirrors the rule csv.Writer applies with a ',' delimiter.
func fieldNeedsQuotes(field string) bool {
	if field == "" {
		return false
	}
	if field == `\.` || strings.ContainsAny(field, ",\"\r\n") {
		return true
	}
	r, _ := utf8.DecodeRuneInString(field)
	return unicode.IsSpace(r)
}

// hasLoneCR reports whether any field holds a '\r' not followed by '\n'.
func hasLoneCR(row []string) bool {
	for _, field := range row {
		for i := 0; i < len(field); i++ {
			if field[i] == '\r' && (i+1 == len(field) || field[i+1] != '\n') {
				return true
			}
		}
	}
	return false
}

func (w *Writer) writeEOL() error {
	if w.crlf {
		_, err := w.buf.WriteString("\r\n")
		return err
	}
	return w.buf.WriteByte('\n')
}
