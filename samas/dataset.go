package samas

// Dataset is the read-only compound dictionary keyed by surface form.
// It is safe for concurrent use once constructed.
type Dataset struct {
	rows  []DatasetRow
	index map[string]int
}

// NewDataset builds a dataset from rows in source order. Rows with an empty word are
// dropped; when a word repeats, the first row wins.
func NewDataset(rows []DatasetRow) *Dataset {
	d := &Dataset{
		rows:  make([]DatasetRow, 0, len(rows)),
		index: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		if row.Word == "" {
			continue
		}
		if _, dup := d.index[row.Word]; dup {
			continue
		}
		d.index[row.Word] = len(d.rows)
		d.rows = append(d.rows, row)
	}
	return d
}

// Lookup returns the row whose word equals the given string exactly.
func (d *Dataset) Lookup(word string) (DatasetRow, bool) {
	if d == nil {
		return DatasetRow{}, false
	}
	i, ok := d.index[word]
	if !ok {
		return DatasetRow{}, false
	}
	return d.rows[i], true
}

// Contains reports whether word is a known compound.
func (d *Dataset) Contains(word string) bool {
	if d == nil {
		return false
	}
	_, ok := d.index[word]
	return ok
}

// Len returns the number of distinct words.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Rows returns a copy of all rows in source order.
func (d *Dataset) Rows() []DatasetRow {
	if d == nil {
		return nil
	}
	out := make([]DatasetRow, len(d.rows))
	copy(out, d.rows)
	return out
}

// LabelCounts counts rows per label code.
func (d *Dataset) LabelCounts() map[string]int {
	out := make(map[string]int)
	if d == nil {
		return out
	}
	for _, r := range d.rows {
		out[r.Label]++
	}
	return out
}
