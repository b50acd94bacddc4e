package tabular

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Row is one data line of the tabular input.
type Row struct {
	// Line is the 1-based line (or sheet row) number in the source file,
	// used for error attribution.
	Line   int
	Fields []string
}

// Table holds the parsed mapping file: the header line plus all data rows.
// Blank lines are dropped; Line numbers still reflect file positions.
type Table struct {
	Header []string
	Rows   []Row
}

// Load reads a mapping file and parses it into a Table. The format is chosen
// by extension: .xlsx loads the first sheet via excelize, everything else is
// treated as comma-separated text. The first non-blank row is the header.
func Load(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadXLSX(path)
	}
	return loadCSV(path)
}

func loadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping file: %w", err)
	}
	defer file.Close()

	table := &Table{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := SplitLine(text)
		if table.Header == nil {
			table.Header = fields
			continue
		}
		table.Rows = append(table.Rows, Row{Line: line, Fields: fields})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	if table.Header == nil {
		return nil, errors.New("mapping file is empty")
	}
	return table, nil
}
