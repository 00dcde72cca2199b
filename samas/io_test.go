package samas

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const csvFixture = "Word,sangna1,Middle,sangna2,Label\n" +
	"राजपुत्र,राजा,का,पुत्र,T\n" +
	"माता-पिता,माता,और,पिता,D\n" +
	",खाली,शब्द,पंक्ति,T\n"

func TestParseDatasetFileFormats(t *testing.T) {
	want := []DatasetRow{
		{Word: "राजपुत्र", Sangna1: "राजा", Middle: "का", Sangna2: "पुत्र", Label: "T"},
		{Word: "माता-पिता", Sangna1: "माता", Middle: "और", Sangna2: "पिता", Label: "D"},
	}
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "csv", file: "data.csv", content: csvFixture},
		{name: "csv with bom", file: "data.csv", content: "\ufeff" + csvFixture},
		{name: "tsv", file: "data.tsv", content: strings.ReplaceAll(csvFixture, ",", "\t")},
		{name: "txt", file: "data.txt", content: strings.ReplaceAll(csvFixture, ",", "\t")},
		{name: "padded cells", file: "data.csv", content: "Word , sangna1,Middle,sangna2,Label\n राजपुत्र ,राजा,का,पुत्र, T\nमाता-पिता,माता,और,पिता,D\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			got, err := ParseDatasetFile(path, ColumnConfig{})
			if err != nil {
				t.Fatalf("ParseDatasetFile: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("got %d rows, want %d: %+v", len(got), len(want), got)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestParseDatasetFileXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samas_hindi_dataset.xlsx")
	book := excelize.NewFile()
	rows := [][]any{
		{"Word", "sangna1", "Middle", "sangna2", "Label"},
		{"राजपुत्र", "राजा", "का", "पुत्र", "T"},
		{"नीलकमल", "नीला", "है जो", "कमल", "K"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := book.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	if err := book.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	_ = book.Close()

	got, err := ParseDatasetFile(path, ColumnConfig{})
	if err != nil {
		t.Fatalf("ParseDatasetFile: %v", err)
	}
	if len(got) != 2 || got[1].Word != "नीलकमल" || got[1].Meaning() != "नीला है जो कमल" {
		t.Errorf("unexpected rows: %+v", got)
	}

	meta, err := ReadDatasetFileMetadata(path)
	if err != nil {
		t.Fatalf("ReadDatasetFileMetadata: %v", err)
	}
	if meta.Suggested.Word != "Word" || meta.Suggested.Label != "Label" {
		t.Errorf("suggested = %+v", meta.Suggested)
	}
}

func TestParseRecordsColumns(t *testing.T) {
	headerless := [][]string{
		{"T", "राजपुत्र", "राजा", "का", "पुत्र"},
	}
	explicit := ColumnConfig{Word: "#2", Sangna1: "#3", Middle: "#4", Sangna2: "#5", Label: "#1"}
	rows, err := ParseRecords(headerless, explicit)
	if err != nil {
		t.Fatalf("ParseRecords: %v", err)
	}
	if len(rows) != 1 || rows[0].Word != "राजपुत्र" || rows[0].Label != "T" {
		t.Errorf("index columns: %+v", rows)
	}

	hindiHeader := [][]string{
		{"शब्द", "पद1", "विभक्ति", "पद2", "प्रकार"},
		{"राजपुत्र", "राजा", "का", "पुत्र", "T"},
	}
	rows, err = ParseRecords(hindiHeader, ColumnConfig{})
	if err != nil {
		t.Fatalf("ParseRecords hindi header: %v", err)
	}
	if len(rows) != 1 || rows[0].Sangna2 != "पुत्र" {
		t.Errorf("hindi header: %+v", rows)
	}

	renamed := [][]string{
		{"compound_word", "sangna1", "Middle", "sangna2", "Label"},
		{"राजपुत्र", "राजा", "का", "पुत्र", "T"},
	}
	rows, err = ParseRecords(renamed, ColumnConfig{Word: "compound_word"})
	if err != nil || len(rows) != 1 {
		t.Fatalf("named override: %v %+v", err, rows)
	}
}

func TestParseRecordsErrors(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
		cols    ColumnConfig
		wantErr error
	}{
		{name: "no records", records: nil, wantErr: ErrNoRows},
		{name: "header only", records: [][]string{{"Word", "sangna1", "Middle", "sangna2", "Label"}}, wantErr: ErrNoRows},
		{name: "missing label", records: [][]string{{"Word", "sangna1", "Middle", "sangna2"}, {"a", "b", "c", "d"}}, wantErr: ErrMissingColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecords(tt.records, tt.cols)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	bad := [][]string{{"Word", "sangna1", "Middle", "sangna2", "Label"}}
	if _, err := ParseRecords(bad, ColumnConfig{Word: "#0"}); err == nil {
		t.Error("expected error for #0")
	}
	if _, err := ParseRecords(bad, ColumnConfig{Word: "#9"}); err == nil {
		t.Error("expected error for out of range index")
	}
	if _, err := ParseRecords(bad, ColumnConfig{Word: "nope"}); err == nil {
		t.Error("expected error for unknown column name")
	}
}

func TestParseDatasetReaderUnsupported(t *testing.T) {
	_, err := ParseDatasetReader(strings.NewReader("{}"), "data.json", ColumnConfig{})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestSetColumnCandidates(t *testing.T) {
	t.Cleanup(func() { SetColumnCandidates(ColumnCandidates{}) })
	SetColumnCandidates(ColumnCandidates{Word: []string{"samasword"}})
	records := [][]string{
		{"samasword", "sangna1", "Middle", "sangna2", "Label"},
		{"राजपुत्र", "राजा", "का", "पुत्र", "T"},
	}
	rows, err := ParseRecords(records, ColumnConfig{})
	if err != nil || len(rows) != 1 {
		t.Fatalf("ParseRecords: %v %+v", err, rows)
	}
	if got := DefaultColumnCandidates().Word[0]; got != "Word" {
		t.Errorf("defaults changed: %q", got)
	}
}
