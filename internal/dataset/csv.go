package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type delimitedReader struct{}

func (delimitedReader) CanRead(string) bool { return true }

func (delimitedReader) Read(path string, opt Options) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = DelimiterFor(path)
	}
	return ReadDelimited(f, delim)
}

// ReadDelimited reads a header and rows from delimited text. A leading BOM is
// dropped and invalid UTF-8 is replaced rather than failing the read. Short
// rows are padded; rows wider than the header are an error.
func ReadDelimited(r io.Reader, delim rune) ([]string, [][]string, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(dec)
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if len(rec) > ncol {
			return nil, nil, fmt.Errorf("read row %d: %d fields, header has %d", len(rows)+1, len(rec), ncol)
		}
		if len(rec) < ncol {
			tmp := make([]string, ncol)
			copy(tmp, rec)
			rec = tmp
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

// DelimiterFor picks the delimiter implied by the file extension.
func DelimiterFor(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
