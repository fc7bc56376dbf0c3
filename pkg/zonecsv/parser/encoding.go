// Package parser provides the CSV row model used to read and rewrite zone files.
package parser

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// utf8BOM is the byte order mark some spreadsheet tools prepend to UTF-8 files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LookupEncoding resolves a WHATWG encoding label such as "windows-1252".
// It returns nil for UTF-8 (and for the empty label): UTF-8 input is passed
// through untouched so that bytes outside the zone column survive a rewrite.
func LookupEncoding(label string) (encoding.Encoding, error) {
	if label == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return nil, nil
	}
	return enc, nil
}
