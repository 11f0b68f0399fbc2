package clean

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/KaramelBytes/popclean-cli/internal/dataset"
	"github.com/KaramelBytes/popclean-cli/internal/quantile"
)

// Imputation reports what Impute filled.
type Imputation struct {
	// Filled counts, per tracked column, the values that went from missing
	// to present.
	Filled map[string]int
	// Statistics used for the numeric columns. NaN when the column had no
	// present value, in which case its gaps are left as they were.
	AgeMean          float64
	YearMedian       float64
	PopulationMedian float64
}

// Impute fills missing values column by column. Statistics are computed
// once from the present finite values of d and applied to every gap:
//
//	gender         -> 99 (unknown sex code)
//	income_groups  -> "Unknown"
//	age            -> mean
//	year           -> median
//	population     -> median
func Impute(d *dataset.Dataset) (*dataset.Dataset, Imputation) {
	imp := Imputation{
		AgeMean:          mean(quantile.Finite(d.Numbers(dataset.ColAge))),
		YearMedian:       quantile.Median(quantile.Finite(d.Numbers(dataset.ColYear))),
		PopulationMedian: quantile.Median(quantile.Finite(d.Numbers(dataset.ColPopulation))),
	}

	out := d.WithColumn(dataset.ColGender, fillWith(dataset.Num(SexUnknownCode)))
	out = out.WithColumn(dataset.ColIncome, fillWith(dataset.Str(IncomeUnknown)))
	if !math.IsNaN(imp.AgeMean) {
		out = out.WithColumn(dataset.ColAge, fillWith(dataset.Num(imp.AgeMean)))
	}
	if !math.IsNaN(imp.YearMedian) {
		out = out.WithColumn(dataset.ColYear, fillWith(dataset.Num(imp.YearMedian)))
	}
	if !math.IsNaN(imp.PopulationMedian) {
		out = out.WithColumn(dataset.ColPopulation, fillWith(dataset.Num(imp.PopulationMedian)))
	}

	imp.Filled = make(map[string]int, len(dataset.Required))
	for _, col := range dataset.Required {
		imp.Filled[col] = d.Missing(col) - out.Missing(col)
	}
	return out, imp
}

func fillWith(v dataset.Cell) func(dataset.Cell) dataset.Cell {
	return func(c dataset.Cell) dataset.Cell {
		if c.IsNull() {
			return v
		}
		return c
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stats.Sample{Xs: xs}.Mean()
}
