package dataset

import (
	"fmt"
	"strings"
)

// SchemaError indicates required columns are absent from the input.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %s is missing required column(s): %s", e.Path, strings.Join(e.Missing, ", "))
}

// TypeError indicates a non-numeric value in a column that must be numeric.
// Row is 1-based and counts data rows only.
type TypeError struct {
	Column string
	Row    int
	Value  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type: column %q row %d: %q is not numeric", e.Column, e.Row, e.Value)
}
