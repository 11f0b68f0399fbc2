package clean

import (
	"github.com/KaramelBytes/popclean-cli/internal/dataset"
)

const (
	// SexUnknownCode stands in for a missing sex code until it is labelled.
	SexUnknownCode = 99
	// IncomeUnknown is the canonical value for a missing income bracket.
	IncomeUnknown = "Unknown"
)

// incomeLookup is the first income stage. Typo variants map to their
// canonical spelling and canonical values map straight to an ordinal code.
// Its keys also form the membership set behind Recoding's income counts.
var incomeLookup = map[string]dataset.Cell{
	"lower_middle_income_typo": dataset.Str("lower_middle_income"),
	"low_income_typo":          dataset.Str("low_income"),
	"high_income_typo":         dataset.Str("high_income"),
	"upper_middle_income_typo": dataset.Str("upper_middle_income"),
	"low_income":               dataset.Num(1),
	"lower_middle_income":      dataset.Num(2),
	"upper_middle_income":      dataset.Num(3),
	"high_income":              dataset.Num(4),
	IncomeUnknown:              dataset.Num(99),
}

var incomeOrdinal = map[string]float64{
	"low_income":          1,
	"lower_middle_income": 2,
	"upper_middle_income": 3,
	"high_income":         4,
	IncomeUnknown:         99,
}

var incomeLabels = map[float64]string{
	1:  "Low Income",
	2:  "Lower Middle Income",
	3:  "Upper Middle Income",
	4:  "High Income",
	99: "Unknown",
}

var sexLabels = map[float64]string{
	1:              "1 (Male?)",
	2:              "2 (Female?)",
	3:              "3 (Other?)",
	SexUnknownCode: "Unknown",
}

// IncomeLabels returns the display labels an income bracket can end up with.
func IncomeLabels() []string {
	return []string{"Low Income", "Lower Middle Income", "Upper Middle Income", "High Income", "Unknown"}
}

// SexLabels returns the display labels a sex code can end up with.
func SexLabels() []string {
	return []string{"1 (Male?)", "2 (Female?)", "3 (Other?)", "Unknown"}
}

// Recoding reports what Recode measured.
type Recoding struct {
	// Rows whose income value is an incomeLookup key, measured on the
	// dataset before the typo fix and after labelling.
	IncomeKeysBefore int
	IncomeKeysAfter  int
	// TyposFixed counts rows that held one of the typo variants.
	TyposFixed int
	// SexLabelled counts sex codes replaced by a display label.
	SexLabelled int
}

// IncomeCorrected is the income figure reported to the console: keyset
// membership before minus after. Rows labelled "Unknown" still match the
// keyset afterwards, so this is informational and not a count of typos.
func (r Recoding) IncomeCorrected() int {
	return r.IncomeKeysBefore - r.IncomeKeysAfter
}

// Recode maps income brackets to display labels in three ordered steps
// (typo fix, ordinal code, label) and sex codes to display labels. Values
// a step does not know pass through unchanged, which keeps Recode
// idempotent on already-labelled data.
func Recode(d *dataset.Dataset) (*dataset.Dataset, Recoding) {
	var rc Recoding
	rc.IncomeKeysBefore = d.Count(dataset.ColIncome, inIncomeKeyset)
	rc.TyposFixed = d.Count(dataset.ColIncome, isIncomeTypo)

	fixed := d.WithColumn(dataset.ColIncome, fixIncomeTypo)
	coded := fixed.WithColumn(dataset.ColIncome, encodeIncome)
	out := coded.WithColumn(dataset.ColIncome, labelIncome)
	rc.IncomeKeysAfter = out.Count(dataset.ColIncome, inIncomeKeyset)

	rc.SexLabelled = out.Count(dataset.ColGender, hasSexLabel)
	out = out.WithColumn(dataset.ColGender, labelSex)
	return out, rc
}

func inIncomeKeyset(c dataset.Cell) bool {
	if !c.IsText() {
		return false
	}
	_, ok := incomeLookup[c.Str]
	return ok
}

func isIncomeTypo(c dataset.Cell) bool {
	if !c.IsText() {
		return false
	}
	v, ok := incomeLookup[c.Str]
	return ok && v.IsText()
}

func fixIncomeTypo(c dataset.Cell) dataset.Cell {
	if c.IsText() {
		if v, ok := incomeLookup[c.Str]; ok {
			return v
		}
	}
	return c
}

func encodeIncome(c dataset.Cell) dataset.Cell {
	if c.IsText() {
		if code, ok := incomeOrdinal[c.Str]; ok {
			return dataset.Num(code)
		}
	}
	return c
}

func labelIncome(c dataset.Cell) dataset.Cell {
	if c.IsNumber() {
		if label, ok := incomeLabels[c.Num]; ok {
			return dataset.Str(label)
		}
	}
	return c
}

func hasSexLabel(c dataset.Cell) bool {
	if !c.IsNumber() {
		return false
	}
	_, ok := sexLabels[c.Num]
	return ok
}

func labelSex(c dataset.Cell) dataset.Cell {
	if c.IsNumber() {
		if label, ok := sexLabels[c.Num]; ok {
			return dataset.Str(label)
		}
	}
	return c
}
