package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// Write encodes the dataset as delimited text with a header row.
// Null cells are written as empty fields.
func Write(w io.Writer, d *Dataset, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(d.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(d.Columns))
	for i, r := range d.Rows {
		for j := range rec {
			rec[j] = r[j].String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Encode returns the delimited text of the dataset.
func Encode(d *Dataset, delim rune) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d, delim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
