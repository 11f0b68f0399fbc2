package clean

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/KaramelBytes/popclean-cli/internal/dataset"
)

// Summary collects the diagnostics of one pipeline run.
type Summary struct {
	InputRows  int
	OutputRows int
	Duplicates int
	Imputation Imputation
	Recoding   Recoding
	Years      YearNormalization
}

// Result is the outcome of Run.
type Result struct {
	Cleaned *dataset.Dataset
	Summary Summary
}

// fillOrder is the order imputation counts are reported in.
var fillOrder = []string{
	dataset.ColIncome,
	dataset.ColAge,
	dataset.ColGender,
	dataset.ColYear,
	dataset.ColPopulation,
}

// Run cleans raw and returns the cleaned dataset with its diagnostics.
// raw is not modified. The context is checked between stages.
func Run(ctx context.Context, raw *dataset.Dataset, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := dataset.CheckSchema(raw); err != nil {
		return nil, err
	}
	sum := Summary{InputRows: raw.Len()}

	deduped, removed := RemoveDuplicates(raw)
	sum.Duplicates = removed
	logger.Info("removed duplicate rows", slog.Int("count", removed))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filled, imp := Impute(deduped)
	sum.Imputation = imp
	for _, col := range fillOrder {
		logger.Info("filled missing values", slog.String("column", col), slog.Int("count", imp.Filled[col]))
	}
	logStatistic(logger, dataset.ColAge, "mean", imp.AgeMean)
	logStatistic(logger, dataset.ColYear, "median", imp.YearMedian)
	logStatistic(logger, dataset.ColPopulation, "median", imp.PopulationMedian)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recoded, rc := Recode(filled)
	sum.Recoding = rc
	logger.Info("recoded income groups",
		slog.Int("count", rc.IncomeCorrected()),
		slog.Int("typos_fixed", rc.TyposFixed))
	logger.Info("recoded gender", slog.Int("count", rc.SexLabelled))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, yn := NormalizeYears(recoded)
	sum.Years = yn
	logger.Info("corrected years", slog.String("range", "2025-2099"), slog.Int("count", yn.LateCentury.Changed()))
	logger.Info("corrected years", slog.String("range", ">=2100"), slog.Int("count", yn.NextCentury.Changed()))
	logger.Debug("years shifted by one century", slog.Int("rows", yn.Shifted))

	sum.OutputRows = cleaned.Len()
	return &Result{Cleaned: cleaned, Summary: sum}, nil
}

func logStatistic(logger *slog.Logger, col, stat string, v float64) {
	if math.IsNaN(v) {
		logger.Warn("no values to impute from; gaps left as missing", slog.String("column", col))
		return
	}
	logger.Debug("imputation statistic", slog.String("column", col), slog.String("stat", stat), slog.Float64("value", v))
}

// Lines renders one console sentence per corrective action.
func (s Summary) Lines() []string {
	lines := []string{fmt.Sprintf("Removed %d duplicate rows.", s.Duplicates)}
	for _, col := range fillOrder {
		lines = append(lines, fmt.Sprintf("Filled %d missing '%s' values.", s.Imputation.Filled[col], col))
	}
	lines = append(lines,
		fmt.Sprintf("Corrected %d rows with income group typos and converted to numeric categories.", s.Recoding.IncomeCorrected()),
		fmt.Sprintf("Changed %d rows with years between 2025-2099.", s.Years.LateCentury.Changed()),
		fmt.Sprintf("Changed %d rows with years >=2100.", s.Years.NextCentury.Changed()),
	)
	return lines
}
