// Package dataset holds the in-memory table model shared by the cleaning
// pipeline and the reporters, plus its file readers and writer.
package dataset

// Tracked column names.
const (
	ColGender     = "gender"
	ColIncome     = "income_groups"
	ColAge        = "age"
	ColYear       = "year"
	ColPopulation = "population"
)

// Required lists the columns every input must carry.
var Required = []string{ColGender, ColIncome, ColAge, ColYear, ColPopulation}

// numericColumns must parse as numbers wherever present.
var numericColumns = map[string]bool{
	ColAge:        true,
	ColYear:       true,
	ColPopulation: true,
}

// Record is one row; cells are ordered like Dataset.Columns.
type Record []Cell

// Dataset is an ordered, in-memory table.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Record
}

// ColumnKind summarizes the kinds present in one column.
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
	KindEmpty       ColumnKind = "empty"
)

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Index returns the position of the named column or -1.
func (d *Dataset) Index(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy; rows of the copy can be modified freely.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Name:    d.Name,
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]Record, len(d.Rows)),
	}
	for i, r := range d.Rows {
		out.Rows[i] = append(Record(nil), r...)
	}
	return out
}

// Column returns a copy of the named column's cells, or nil if absent.
func (d *Dataset) Column(name string) []Cell {
	j := d.Index(name)
	if j < 0 {
		return nil
	}
	out := make([]Cell, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r[j]
	}
	return out
}

// WithColumn returns a copy of d whose named column has been replaced by
// fn applied to every cell. Other columns share no state with d.
// An unknown column yields a plain clone.
func (d *Dataset) WithColumn(name string, fn func(Cell) Cell) *Dataset {
	out := d.Clone()
	j := out.Index(name)
	if j < 0 {
		return out
	}
	for _, r := range out.Rows {
		r[j] = fn(r[j])
	}
	return out
}

// Count returns how many cells of the named column satisfy pred.
func (d *Dataset) Count(name string, pred func(Cell) bool) int {
	j := d.Index(name)
	if j < 0 {
		return 0
	}
	n := 0
	for _, r := range d.Rows {
		if pred(r[j]) {
			n++
		}
	}
	return n
}

// Missing counts absent cells in the named column.
func (d *Dataset) Missing(name string) int {
	return d.Count(name, Cell.IsNull)
}

// Numbers returns the present numeric values of the named column.
func (d *Dataset) Numbers(name string) []float64 {
	j := d.Index(name)
	if j < 0 {
		return nil
	}
	var xs []float64
	for _, r := range d.Rows {
		if r[j].IsNumber() {
			xs = append(xs, r[j].Num)
		}
	}
	return xs
}

// Kind classifies a column: numeric when every present cell is a number,
// categorical when any present cell is text.
func (d *Dataset) Kind(name string) ColumnKind {
	j := d.Index(name)
	if j < 0 {
		return KindEmpty
	}
	kind := KindEmpty
	for _, r := range d.Rows {
		switch r[j].Kind {
		case Text:
			return KindCategorical
		case Number:
			kind = KindNumeric
		}
	}
	return kind
}
