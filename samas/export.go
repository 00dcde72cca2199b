package samas

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ResultCSVHeader is the column layout written by WriteResultsCSV.
var ResultCSVHeader = []string{"text", "expanded", "annotations", "elapsed_seconds"}

// WriteResultsCSV writes one row per result. Annotation lines are joined with newlines
// inside a single quoted cell.
func WriteResultsCSV(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ResultCSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range results {
		row := []string{r.Input, r.Expanded, r.Listing(), r.ElapsedSeconds()}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush result: %w", err)
	}
	return nil
}

// ReadInputTexts reads one text per non-empty line. A leading byte order mark is
// honoured.
func ReadInputTexts(r io.Reader) ([]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	lines := make([]string, 0)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
