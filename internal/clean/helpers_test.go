package clean

import (
	"github.com/KaramelBytes/popclean-cli/internal/dataset"
)

var testColumns = []string{"country", "gender", "income_groups", "age", "year", "population"}

func cell(v any) dataset.Cell {
	switch t := v.(type) {
	case nil:
		return dataset.NullCell()
	case int:
		return dataset.Num(float64(t))
	case float64:
		return dataset.Num(t)
	case string:
		return dataset.Str(t)
	default:
		panic("unsupported test value")
	}
}

func row(vals ...any) dataset.Record {
	r := make(dataset.Record, len(vals))
	for i, v := range vals {
		r[i] = cell(v)
	}
	return r
}

func table(rows ...dataset.Record) *dataset.Dataset {
	return &dataset.Dataset{Name: "test", Columns: testColumns, Rows: rows}
}

func colOf(d *dataset.Dataset, name string) []dataset.Cell {
	return d.Column(name)
}
