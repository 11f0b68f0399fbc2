package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

func (xlsxReader) Read(path string, opt Options) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("xlsx %s has no sheets", path)
		}
		sheet = sheets[0]
	}
	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	header := all[0]
	ncol := len(header)
	rows := make([][]string, 0, len(all)-1)
	for i, rec := range all[1:] {
		if len(rec) > ncol {
			return nil, nil, fmt.Errorf("sheet %q row %d: %d cells, header has %d", sheet, i+1, len(rec), ncol)
		}
		// GetRows drops trailing empty cells.
		padded := make([]string, ncol)
		copy(padded, rec)
		rows = append(rows, padded)
	}
	return header, rows, nil
}
