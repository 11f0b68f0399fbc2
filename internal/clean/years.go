package clean

import (
	"github.com/KaramelBytes/popclean-cli/internal/dataset"
)

const (
	centuryShift     = 100
	lateCenturyStart = 2025
	lateCenturyEnd   = 2099
	nextCenturyStart = 2100
)

// YearRange holds how many rows fell in one flagged range before and after
// normalization.
type YearRange struct {
	Before int
	After  int
}

// Changed is the console figure for the range: before minus after. A year
// shifted from the upper range into the lower one lowers the lower range's
// figure, so it can be negative.
func (r YearRange) Changed() int { return r.Before - r.After }

// YearNormalization reports what NormalizeYears measured.
type YearNormalization struct {
	LateCentury YearRange // [2025, 2099]
	NextCentury YearRange // >= 2100
	// Shifted counts rows whose year was actually corrected.
	Shifted int
}

// NormalizeYears subtracts 100 from every year in [2025, 2099] or >= 2100.
// The correction is applied once per row: 2150 becomes 2050 and stays there.
func NormalizeYears(d *dataset.Dataset) (*dataset.Dataset, YearNormalization) {
	var yn YearNormalization
	yn.LateCentury.Before = d.Count(dataset.ColYear, inLateCentury)
	yn.NextCentury.Before = d.Count(dataset.ColYear, inNextCentury)
	yn.Shifted = d.Count(dataset.ColYear, needsShift)

	out := d.WithColumn(dataset.ColYear, shiftYear)

	yn.LateCentury.After = out.Count(dataset.ColYear, inLateCentury)
	yn.NextCentury.After = out.Count(dataset.ColYear, inNextCentury)
	return out, yn
}

func inLateCentury(c dataset.Cell) bool {
	return c.IsNumber() && c.Num >= lateCenturyStart && c.Num <= lateCenturyEnd
}

func inNextCentury(c dataset.Cell) bool {
	return c.IsNumber() && c.Num >= nextCenturyStart
}

func needsShift(c dataset.Cell) bool {
	return inLateCentury(c) || inNextCentury(c)
}

func shiftYear(c dataset.Cell) dataset.Cell {
	if needsShift(c) {
		return dataset.Num(c.Num - centuryShift)
	}
	return c
}
