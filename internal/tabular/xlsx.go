package tabular

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

func loadXLSX(path string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	table := &Table{}
	for i, fields := range rows {
		if blankRow(fields) {
			continue
		}
		if table.Header == nil {
			table.Header = fields
			continue
		}
		table.Rows = append(table.Rows, Row{Line: i + 1, Fields: fields})
	}
	if table.Header == nil {
		return nil, errors.New("workbook is empty")
	}
	return table, nil
}

func blankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
