package dataset

import (
	"math"
	"strconv"
)

// Kind is the value kind held by a Cell.
type Kind uint8

const (
	// Null marks an absent value.
	Null Kind = iota
	// Number is a float64 value.
	Number
	// Text is a free-form string value.
	Text
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	default:
		return "null"
	}
}

// Cell is a single table value with an explicit missing state.
type Cell struct {
	Kind Kind
	Num  float64
	// Str holds the text of a Text cell. For Number cells read from a file it
	// keeps the original spelling so untouched values round-trip verbatim.
	Str string
}

// NullCell returns an absent value.
func NullCell() Cell { return Cell{} }

// Num returns a numeric cell.
func Num(v float64) Cell { return Cell{Kind: Number, Num: v} }

// Str returns a text cell.
func Str(s string) Cell { return Cell{Kind: Text, Str: s} }

// IsNull reports whether the cell is absent.
func (c Cell) IsNull() bool { return c.Kind == Null }

// IsNumber reports whether the cell holds a number.
func (c Cell) IsNumber() bool { return c.Kind == Number }

// IsText reports whether the cell holds text.
func (c Cell) IsText() bool { return c.Kind == Text }

// Equal compares two cells by kind and value. Nulls are equal to each other
// and numbers compare numerically, so "1" and "1.0" read from a file match.
func (c Cell) Equal(o Cell) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case Number:
		if math.IsNaN(c.Num) && math.IsNaN(o.Num) {
			return true
		}
		return c.Num == o.Num
	case Text:
		return c.Str == o.Str
	default:
		return true
	}
}

// String renders the cell for output. Null renders as the empty string.
func (c Cell) String() string {
	switch c.Kind {
	case Number:
		if c.Str != "" {
			return c.Str
		}
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case Text:
		return c.Str
	default:
		return ""
	}
}
