package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is the head of one worksheet.
type Sheet struct {
	Name      string     `json:"name"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
}

// Preview opens a workbook and returns up to maxRows rows of every sheet.
func Preview(data []byte, maxRows int) ([]Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		s := Sheet{Name: name, TotalRows: len(rows)}
		if maxRows > 0 && len(rows) > maxRows {
			rows = rows[:maxRows]
		}
		s.Rows = rows
		sheets = append(sheets, s)
	}
	return sheets, nil
}
