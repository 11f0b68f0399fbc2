package analysis

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/KaramelBytes/popclean-cli/internal/clean"
	"github.com/KaramelBytes/popclean-cli/internal/dataset"
)

// ColumnInfo describes one column of a profiled dataset.
type ColumnInfo struct {
	Name    string
	Kind    dataset.ColumnKind
	NonNull int
	Missing int
}

// Report is the read-only profile of a raw dataset.
type Report struct {
	Name       string
	Rows       int
	Cols       []ColumnInfo
	Numeric    []NumSummary
	Duplicates int
	// Categorical includes missing values as their own bucket.
	Categorical []CatSummary
}

// Profile inspects d without changing it.
func Profile(d *dataset.Dataset) *Report {
	r := &Report{Name: d.Name, Rows: d.Len()}
	for _, col := range d.Columns {
		miss := d.Missing(col)
		r.Cols = append(r.Cols, ColumnInfo{
			Name:    col,
			Kind:    d.Kind(col),
			NonNull: d.Len() - miss,
			Missing: miss,
		})
	}
	r.Numeric = Describe(d)
	_, r.Duplicates = clean.RemoveDuplicates(d)
	r.Categorical = Categorical(d, true)
	return r
}

// Text renders the profile as bracketed sections.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("[DATA INFORMATION]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(r.Cols)))
	for _, c := range r.Cols {
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d)\n", safeName(c.Name), c.Kind, c.NonNull))
	}

	b.WriteString("\n[DATA DESCRIPTION]\n")
	writeDescribe(&b, r.Numeric)

	b.WriteString("\n[MISSING VALUES]\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, c := range r.Cols {
		fmt.Fprintf(tw, "%s\t%d\n", safeName(c.Name), c.Missing)
	}
	tw.Flush()

	b.WriteString("\n[DUPLICATE ROWS]\n")
	b.WriteString(fmt.Sprintf("%d\n", r.Duplicates))

	b.WriteString("\n[VALUE COUNTS]\n")
	if len(r.Categorical) == 0 {
		b.WriteString("(no categorical columns)\n")
	}
	for _, cs := range r.Categorical {
		b.WriteString(fmt.Sprintf("\n%s - Value Counts:\n", safeName(cs.Column)))
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, v := range cs.Values {
			fmt.Fprintf(tw, "%s\t%d\n", safeVal(v.Value), v.Count)
		}
		tw.Flush()
		b.WriteString(fmt.Sprintf("\n%s - Proportions:\n", safeName(cs.Column)))
		tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, v := range cs.Values {
			fmt.Fprintf(tw, "%s\t%.6f\n", safeVal(v.Value), v.Percent/100)
		}
		tw.Flush()
	}
	return b.String()
}
