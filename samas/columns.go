package samas

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// ColumnCandidates lists header names accepted for each dataset column during
// auto-detection. Matching ignores case.
type ColumnCandidates struct {
	Word    []string `json:"word"`
	Sangna1 []string `json:"sangna1"`
	Middle  []string `json:"middle"`
	Sangna2 []string `json:"sangna2"`
	Label   []string `json:"label"`
}

// datasetField enumerates the five dataset columns in row order.
type datasetField int

const (
	fieldWord datasetField = iota
	fieldSangna1
	fieldMiddle
	fieldSangna2
	fieldLabel
	numFields
)

var fieldNames = [numFields]string{"Word", "sangna1", "Middle", "sangna2", "Label"}

func (f datasetField) String() string { return fieldNames[f] }

var (
	candidatesMu sync.RWMutex
	candidates   = builtinCandidates()
)

func builtinCandidates() ColumnCandidates {
	return ColumnCandidates{
		Word:    []string{"Word", "samas", "compound", "शब्द", "समास"},
		Sangna1: []string{"sangna1", "sangya1", "first", "संज्ञा1", "पद1"},
		Middle:  []string{"Middle", "connector", "vibhakti", "मध्य", "विभक्ति"},
		Sangna2: []string{"sangna2", "sangya2", "second", "संज्ञा2", "पद2"},
		Label:   []string{"Label", "type", "category", "प्रकार"},
	}
}

// DefaultColumnCandidates returns the built-in header names.
func DefaultColumnCandidates() ColumnCandidates {
	return builtinCandidates()
}

// SetColumnCandidates replaces the header names used by auto-detection. Nil fields keep
// the built-in names.
func SetColumnCandidates(c ColumnCandidates) {
	def := builtinCandidates()
	for f, names := range c.byField() {
		if names == nil {
			continue
		}
		*def.field(datasetField(f)) = append([]string(nil), names...)
	}
	candidatesMu.Lock()
	candidates = def
	candidatesMu.Unlock()
}

func activeCandidates() ColumnCandidates {
	candidatesMu.RLock()
	defer candidatesMu.RUnlock()
	return candidates
}

func (c *ColumnCandidates) field(f datasetField) *[]string {
	switch f {
	case fieldWord:
		return &c.Word
	case fieldSangna1:
		return &c.Sangna1
	case fieldMiddle:
		return &c.Middle
	case fieldSangna2:
		return &c.Sangna2
	default:
		return &c.Label
	}
}

func (c ColumnCandidates) byField() [numFields][]string {
	return [numFields][]string{c.Word, c.Sangna1, c.Middle, c.Sangna2, c.Label}
}

func (c ColumnConfig) byField() [numFields]string {
	return [numFields]string{c.Word, c.Sangna1, c.Middle, c.Sangna2, c.Label}
}

// columnRef is a column position. named is set when the position came from a header
// name, which also means the first record is a header.
type columnRef struct {
	index int
	named bool
}

// label returns the header text of the column, or "#n" for positional columns.
func (c columnRef) label(header []string) string {
	if c.named && c.index < len(header) && header[c.index] != "" {
		return header[c.index]
	}
	return "#" + strconv.Itoa(c.index+1)
}

// datasetLayout maps every dataset field to a record column.
type datasetLayout [numFields]columnRef

func (l datasetLayout) hasHeader() bool {
	for _, c := range l {
		if c.named {
			return true
		}
	}
	return false
}

func (l datasetLayout) row(rec []string) DatasetRow {
	cell := func(f datasetField) string {
		i := l[f].index
		if i < 0 || i >= len(rec) {
			return ""
		}
		return cleanCell(rec[i])
	}
	return DatasetRow{
		Word:    cell(fieldWord),
		Sangna1: cell(fieldSangna1),
		Middle:  cell(fieldMiddle),
		Sangna2: cell(fieldSangna2),
		Label:   cell(fieldLabel),
	}
}

// suggested reports the layout as a ColumnConfig, for display.
func (l datasetLayout) suggested(header []string) ColumnConfig {
	return ColumnConfig{
		Word:    l[fieldWord].label(header),
		Sangna1: l[fieldSangna1].label(header),
		Middle:  l[fieldMiddle].label(header),
		Sangna2: l[fieldSangna2].label(header),
		Label:   l[fieldLabel].label(header),
	}
}

// resolveLayout locates every field in header. Explicit columns may be header names or
// 1-based positions written as "#n"; the rest are auto-detected.
func resolveLayout(header []string, cols ColumnConfig) (datasetLayout, error) {
	var layout datasetLayout
	explicit := cols.byField()
	names := activeCandidates().byField()
	for f := datasetField(0); f < numFields; f++ {
		ref, err := resolveColumn(header, explicit[f], names[f])
		if err != nil {
			return layout, fmt.Errorf("%s column: %w", f, err)
		}
		if ref.index < 0 {
			return layout, fmt.Errorf("%w: %s", ErrMissingColumn, f)
		}
		layout[f] = ref
	}
	return layout, nil
}

func resolveColumn(header []string, explicit string, names []string) (columnRef, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit == "" {
		return columnRef{index: indexFold(header, names...), named: true}, nil
	}
	if i := indexFold(header, explicit); i >= 0 {
		return columnRef{index: i, named: true}, nil
	}
	digits, positional := strings.CutPrefix(explicit, "#")
	if !positional {
		return columnRef{index: -1}, fmt.Errorf("column %q not found", explicit)
	}
	pos, err := strconv.Atoi(strings.TrimSpace(digits))
	switch {
	case err != nil:
		return columnRef{index: -1}, fmt.Errorf("invalid column index %q", explicit)
	case pos < 1:
		return columnRef{index: -1}, fmt.Errorf("column indices are 1-based: %q", explicit)
	case pos > len(header):
		return columnRef{index: -1}, fmt.Errorf("column index %s is out of range", explicit)
	}
	return columnRef{index: pos - 1}, nil
}

// indexFold returns the first header position equal to any of names, ignoring case.
func indexFold(header []string, names ...string) int {
	for i, h := range header {
		for _, n := range names {
			if strings.EqualFold(h, n) {
				return i
			}
		}
	}
	return -1
}
