package samas

import (
	"os"
	"path/filepath"
	"testing"
)

func testRows() []DatasetRow {
	return []DatasetRow{
		{Word: "राजपुत्र", Sangna1: "राजा", Middle: "का", Sangna2: "पुत्र", Label: "T"},
		{Word: "माता-पिता", Sangna1: "माता", Middle: "और", Sangna2: "पिता", Label: "D"},
		{Word: "नीलकमल", Sangna1: "नीला", Middle: "है जो", Sangna2: "कमल", Label: "K"},
		{Word: "अज्ञातशब्द", Sangna1: "क", Middle: "ख", Sangna2: "ग", Label: "Z"},
	}
}

func testDataset() *Dataset {
	return NewDataset(testRows())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
