package analysis

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/KaramelBytes/popclean-cli/internal/dataset"
)

// Distribution is the numeric and categorical view of one dataset.
type Distribution struct {
	Numeric     []NumSummary
	Categorical []CatSummary
}

// Comparison pairs the distributions of the original and cleaned datasets.
type Comparison struct {
	Original Distribution
	Cleaned  Distribution
}

// Compare builds the before/after report. Neither dataset is modified.
// income_groups is left out of the numeric view of both.
func Compare(original, cleaned *dataset.Dataset) *Comparison {
	return &Comparison{
		Original: distributionOf(original),
		Cleaned:  distributionOf(cleaned),
	}
}

func distributionOf(d *dataset.Dataset) Distribution {
	return Distribution{
		Numeric:     Describe(d, dataset.ColIncome),
		Categorical: Categorical(d, false),
	}
}

// Text renders the comparison with its four sections in fixed order.
func (c *Comparison) Text() string {
	var b strings.Builder
	b.WriteString("--- Data Distribution: Original Dataset (Numerical) ---\n")
	writeDescribe(&b, c.Original.Numeric)
	b.WriteString("\n--- Data Distribution: Categorical Counts (Original) ---\n")
	writeProportions(&b, c.Original.Categorical, "Original")
	b.WriteString("\n--- Data Distribution: Cleaned Dataset (Numerical) ---\n")
	writeDescribe(&b, c.Cleaned.Numeric)
	b.WriteString("\n--- Data Distribution: Categorical Counts (Cleaned) ---\n")
	writeProportions(&b, c.Cleaned.Categorical, "Cleaned")
	return b.String()
}

func writeProportions(b *strings.Builder, cats []CatSummary, label string) {
	for _, cs := range cats {
		b.WriteString(fmt.Sprintf("\nProportions for %s (%s):\n", safeName(cs.Column), label))
		tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, v := range cs.Values {
			fmt.Fprintf(tw, "%s\t%s\t\n", safeVal(v.Value), formatStat(v.Percent))
		}
		tw.Flush()
	}
}

// writeDescribe lays the statistics out with one row per statistic and one
// column per field.
func writeDescribe(b *strings.Builder, nums []NumSummary) {
	if len(nums) == 0 {
		b.WriteString("(no numeric columns)\n")
		return
	}
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, n := range nums {
		fmt.Fprintf(tw, "%s\t", safeName(n.Column))
	}
	fmt.Fprintln(tw)
	rows := []struct {
		name string
		get  func(NumSummary) float64
	}{
		{"count", func(n NumSummary) float64 { return float64(n.Count) }},
		{"mean", func(n NumSummary) float64 { return n.Mean }},
		{"std", func(n NumSummary) float64 { return n.Std }},
		{"min", func(n NumSummary) float64 { return n.Min }},
		{"25%", func(n NumSummary) float64 { return n.Q1 }},
		{"50%", func(n NumSummary) float64 { return n.Median }},
		{"75%", func(n NumSummary) float64 { return n.Q3 }},
		{"max", func(n NumSummary) float64 { return n.Max }},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t", r.name)
		for _, n := range nums {
			fmt.Fprintf(tw, "%s\t", formatStat(r.get(n)))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.6f", v)
}
