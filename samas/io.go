package samas

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ParseDatasetFile reads a CSV, TSV or XLSX file into dataset rows.
func ParseDatasetFile(path string, cols ColumnConfig) ([]DatasetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return ParseDatasetReader(f, path, cols)
}

// ParseDatasetReader parses tabular data from r. The format follows the extension of
// name: .xlsx is read as a workbook, .tsv and .txt as tab separated, anything else as
// comma separated.
func ParseDatasetReader(r io.Reader, name string, cols ColumnConfig) ([]DatasetRow, error) {
	records, err := readTable(r, name, cols.Sheet)
	if err != nil {
		return nil, err
	}
	return ParseRecords(records, cols)
}

func readTable(r io.Reader, name, sheet string) ([][]string, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(r, sheet)
	case ".tsv", ".txt":
		records, err = readDelimited(r, '\t')
	case ".csv", "":
		records, err = readDelimited(r, ',')
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Base(name))
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(name), err)
	}
	return records, nil
}

// ParseRecords maps raw records onto dataset rows. The first record is a header
// whenever at least one column was found by name. Rows without a word are skipped.
func ParseRecords(records [][]string, cols ColumnConfig) ([]DatasetRow, error) {
	if len(records) == 0 {
		return nil, ErrNoRows
	}
	header := cleanHeader(records[0])
	layout, err := resolveLayout(header, cols)
	if err != nil {
		return nil, err
	}
	body := records
	if layout.hasHeader() {
		body = records[1:]
	}
	rows := make([]DatasetRow, 0, len(body))
	for _, rec := range body {
		if row := layout.row(rec); row.Word != "" {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

func readDelimited(r io.Reader, comma rune) ([][]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

func readWorkbook(r io.Reader, sheet string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer book.Close()
	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	return book.GetRows(sheet)
}

func cleanCell(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "\ufeff")
}

func cleanHeader(rec []string) []string {
	out := make([]string, len(rec))
	for i, cell := range rec {
		out[i] = cleanCell(cell)
	}
	return out
}

// DatasetFileMetadata describes the header of a dataset file and the columns
// auto-detection would pick from it.
type DatasetFileMetadata struct {
	Columns   []string
	Suggested ColumnConfig
}

// ReadDatasetFileMetadata returns the header row of a tabular dataset file together
// with the auto-detected column layout. Suggested is empty when detection fails.
func ReadDatasetFileMetadata(path string) (DatasetFileMetadata, error) {
	var meta DatasetFileMetadata
	f, err := os.Open(path)
	if err != nil {
		return meta, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	records, err := readTable(f, path, "")
	if err != nil || len(records) == 0 {
		return meta, err
	}
	meta.Columns = cleanHeader(records[0])
	if layout, err := resolveLayout(meta.Columns, ColumnConfig{}); err == nil {
		meta.Suggested = layout.suggested(meta.Columns)
	}
	return meta, nil
}
