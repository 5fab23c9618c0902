package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is one spreadsheet read from disk or from inside an
// archive, with its rows keyed by sheet name.
type Workbook struct {
	Name   string
	Sheets map[string][]Row

	order []string
}

// SheetNames returns the workbook's sheet names in file order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.order))
	copy(names, w.order)
	return names
}

func isSpreadsheet(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".xlsx" || ext == ".xls" || ext == ".xlsm"
}

// OpenWorkbooks reads one uploaded file into workbooks. A spreadsheet
// yields one workbook; a zip archive yields one per contained
// spreadsheet, named "archive -> entry" so each carries an independent
// status downstream.
func OpenWorkbooks(path string) ([]*Workbook, error) {
	if strings.ToLower(filepath.Ext(path)) == ".zip" {
		return openArchive(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(filepath.Base(path), err)
	}
	defer f.Close()

	wb, err := readWorkbook(filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	return []*Workbook{wb}, nil
}

func openArchive(path string) ([]*Workbook, error) {
	archiveName := filepath.Base(path)

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, ReadError(archiveName, err)
	}
	defer zr.Close()

	var workbooks []*Workbook
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !isSpreadsheet(entry.Name) {
			continue
		}

		name := fmt.Sprintf("%s -> %s", archiveName, filepath.Base(entry.Name))
		rc, err := entry.Open()
		if err != nil {
			return nil, ReadError(name, err)
		}
		wb, err := readWorkbook(name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		workbooks = append(workbooks, wb)
	}

	if len(workbooks) == 0 {
		return nil, ReadError(archiveName, fmt.Errorf("no spreadsheets in archive"))
	}
	return workbooks, nil
}

func readWorkbook(name string, r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ReadError(name, err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, ReadError(name, err)
	}
	defer f.Close()

	wb := &Workbook{Name: name, Sheets: make(map[string][]Row)}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, ReadError(name, fmt.Errorf("sheet %q: %w", sheet, err))
		}
		wb.Sheets[sheet] = tableRows(rows)
		wb.order = append(wb.order, sheet)
	}
	return wb, nil
}

// tableRows converts a sheet's cell matrix into header-keyed rows. The
// first non-blank line is the header; blank lines and cells beyond the
// header width are dropped.
func tableRows(cells [][]string) []Row {
	var headers []string
	start := 0
	for i, line := range cells {
		if !blankLine(line) {
			headers = line
			start = i + 1
			break
		}
	}
	if headers == nil {
		return nil
	}

	rows := make([]Row, 0, len(cells)-start)
	for _, line := range cells[start:] {
		if blankLine(line) {
			continue
		}
		row := make(Row, len(headers))
		for i, header := range headers {
			h := strings.TrimSpace(header)
			if h == "" || i >= len(line) {
				continue
			}
			if value := strings.TrimSpace(line[i]); value != "" {
				row[h] = value
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func blankLine(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
