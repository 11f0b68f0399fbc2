package dataset

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultNAValues are the tokens read as missing values (the pandas read_csv set).
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

// Options controls how input files are read.
type Options struct {
	// Delimiter for delimited text. If 0, chosen by extension (',' or '\t').
	Delimiter rune
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
	// NAValues overrides DefaultNAValues when non-nil.
	NAValues []string
}

// Reader turns a file into a header and raw string rows.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt Options) (header []string, rows [][]string, err error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

func init() {
	Register(xlsxReader{})
	// Delimited text is the fallback and must stay last.
	Register(delimitedReader{})
}

// ErrEmpty indicates the input has no header row.
var ErrEmpty = errors.New("input has no header row")

// Load reads the file at path, checks the required columns and types every
// cell. Columns in numericColumns must hold numbers; other columns are
// numeric when every present value parses, otherwise text.
func Load(path string, opt Options) (*Dataset, error) {
	for _, r := range registry {
		if !r.CanRead(path) {
			continue
		}
		header, rows, err := r.Read(path, opt)
		if err != nil {
			return nil, err
		}
		return build(filepath.Base(path), path, header, rows, opt)
	}
	return nil, fmt.Errorf("no reader for %s", path)
}

func build(name, path string, header []string, rows [][]string, opt Options) (*Dataset, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = norm.NFC.String(strings.TrimSpace(h))
	}
	ds := &Dataset{Name: name, Columns: cols}
	if err := checkSchema(ds, path); err != nil {
		return nil, err
	}

	na := opt.NAValues
	if na == nil {
		na = DefaultNAValues
	}
	isNA := make(map[string]bool, len(na))
	for _, v := range na {
		isNA[v] = true
	}

	ds.Rows = make([]Record, len(rows))
	for i := range rows {
		ds.Rows[i] = make(Record, len(cols))
	}
	for j, col := range cols {
		numeric := true
		for i, row := range rows {
			raw := cellAt(row, j)
			v := strings.TrimSpace(raw)
			if isNA[v] {
				continue
			}
			// ParseFloat also accepts NaN and Inf spellings; those are not numbers here.
			f, err := strconv.ParseFloat(v, 64)
			if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				ds.Rows[i][j] = Cell{Kind: Number, Num: f, Str: v}
				continue
			}
			if numericColumns[col] {
				return nil, &TypeError{Column: col, Row: i + 1, Value: raw}
			}
			numeric = false
		}
		if numeric {
			continue
		}
		// Mixed column: keep every present value as its original text.
		for i, row := range rows {
			raw := cellAt(row, j)
			if isNA[strings.TrimSpace(raw)] {
				continue
			}
			ds.Rows[i][j] = Str(raw)
		}
	}
	return ds, nil
}

// CheckSchema returns a *SchemaError when d lacks any Required column.
func CheckSchema(d *Dataset) error {
	return checkSchema(d, d.Name)
}

func checkSchema(d *Dataset, path string) error {
	var missing []string
	for _, req := range Required {
		if d.Index(req) < 0 {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Path: path, Missing: missing}
	}
	return nil
}

func cellAt(row []string, j int) string {
	if j < len(row) {
		return row[j]
	}
	return ""
}
