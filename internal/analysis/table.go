package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/KaramelBytes/popclean-cli/internal/dataset"
	"github.com/KaramelBytes/popclean-cli/internal/quantile"
)

// missingLabel names the missing-value bucket in value counts.
const missingLabel = "NaN"

// NumSummary captures describe-style statistics for one numeric column.
type NumSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// CategoryCount is one value of a categorical column.
type CategoryCount struct {
	Value   string
	Count   int
	Percent float64
}

// CatSummary holds the value distribution of one categorical column.
type CatSummary struct {
	Column  string
	Present int
	Missing int
	Values  []CategoryCount
}

// Describe summarizes every numeric column of d except the excluded ones.
// A column counts as numeric unless it holds text.
func Describe(d *dataset.Dataset, exclude ...string) []NumSummary {
	skip := make(map[string]bool, len(exclude))
	for _, c := range exclude {
		skip[c] = true
	}
	var out []NumSummary
	for _, col := range d.Columns {
		if skip[col] || d.Kind(col) == dataset.KindCategorical {
			continue
		}
		out = append(out, summarize(col, d.Numbers(col)))
	}
	return out
}

func summarize(col string, xs []float64) NumSummary {
	s := NumSummary{Column: col, Count: len(xs)}
	if len(xs) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sample := stats.Sample{Xs: quantile.Sorted(xs), Sorted: true}
	s.Mean = sample.Mean()
	s.Std = math.NaN()
	if len(xs) > 1 {
		s.Std = sample.StdDev()
	}
	s.Min, s.Max = sample.Bounds()
	s.Q1 = quantile.Of(sample.Xs, 0.25)
	s.Median = quantile.Of(sample.Xs, 0.5)
	s.Q3 = quantile.Of(sample.Xs, 0.75)
	return s
}

// Categorical returns value distributions for every column holding text.
// With includeMissing, absent values form their own bucket and percentages
// are taken over all rows; otherwise over present values only.
func Categorical(d *dataset.Dataset, includeMissing bool) []CatSummary {
	var out []CatSummary
	for _, col := range d.Columns {
		if d.Kind(col) != dataset.KindCategorical {
			continue
		}
		out = append(out, countValues(col, d.Column(col), includeMissing))
	}
	return out
}

func countValues(col string, cells []dataset.Cell, includeMissing bool) CatSummary {
	s := CatSummary{Column: col}
	counts := map[string]int{}
	for _, c := range cells {
		if c.IsNull() {
			s.Missing++
			continue
		}
		s.Present++
		counts[c.String()]++
	}
	tops := make([]CategoryCount, 0, len(counts)+1)
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	total := s.Present
	if includeMissing {
		total += s.Missing
		if s.Missing > 0 {
			tops = append(tops, CategoryCount{Value: missingLabel, Count: s.Missing})
		}
	}
	for i := range tops {
		tops[i].Percent = float64(tops[i].Count) * 100.0 / float64(total)
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	s.Values = tops
	return s
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\t", " ") }
