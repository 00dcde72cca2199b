package samas

import (
	"bytes"
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func newTestService(t *testing.T, mode ExpandMode) (*Service, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	svc, err := NewService(testDataset(), DefaultCategoryMapping(), Config{ExpandMode: mode}, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, &buf
}

func TestServiceProcess(t *testing.T) {
	svc, _ := newTestService(t, ExpandModeSpans)
	res, err := svc.Process("राजपुत्र यहाँ है")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Expanded != "राजा का पुत्र यहाँ है" {
		t.Errorf("Expanded = %q", res.Expanded)
	}
	if res.Listing() != "राजपुत्र: तत्पुरुष समास" {
		t.Errorf("Listing = %q", res.Listing())
	}
	if !equalStrings(res.Compounds, []string{"राजपुत्र"}) {
		t.Errorf("Compounds = %q", res.Compounds)
	}
	if res.Elapsed < 0 {
		t.Errorf("Elapsed = %v", res.Elapsed)
	}
}

func TestServiceProcessNoCompounds(t *testing.T) {
	svc, _ := newTestService(t, ExpandModeSpans)
	res, err := svc.Process("आज मौसम अच्छा है")
	if err != nil {
		t.Fatal(err)
	}
	if res.Expanded != "आज मौसम अच्छा है" || res.Listing() != "" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestServiceProcessEmptyInput(t *testing.T) {
	svc, _ := newTestService(t, ExpandModeSpans)
	for _, in := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Process(in); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Process(%q) err = %v, want ErrEmptyInput", in, err)
		}
	}
}

func TestServiceExpandModes(t *testing.T) {
	rows := []DatasetRow{
		{Word: "kingson", Sangna1: "king", Middle: "of", Sangna2: "son", Label: "T"},
		{Word: "king", Sangna1: "great", Middle: "ruler", Sangna2: "land", Label: "K"},
	}
	tests := []struct {
		mode ExpandMode
		want string
	}{
		{ExpandModeSpans, "king of son great ruler land"},
		{ExpandModeReplaceAll, "great ruler land of son great ruler land"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			svc, err := NewService(NewDataset(rows), CategoryMapping{}, Config{ExpandMode: tt.mode}, nil)
			if err != nil {
				t.Fatal(err)
			}
			res, err := svc.Process("kingson king")
			if err != nil {
				t.Fatal(err)
			}
			if res.Expanded != tt.want {
				t.Errorf("Expanded = %q, want %q", res.Expanded, tt.want)
			}
			if len(res.Annotations) != 2 {
				t.Errorf("Annotations = %q", res.Annotations)
			}
		})
	}
}

func TestNewServiceRejectsEmptyDataset(t *testing.T) {
	if _, err := NewService(NewDataset(nil), DefaultCategoryMapping(), Config{}, nil); !errors.Is(err, ErrNoRows) {
		t.Errorf("err = %v, want ErrNoRows", err)
	}
}

func TestNewServiceLogsUnknownLabels(t *testing.T) {
	_, buf := newTestService(t, ExpandModeSpans)
	if !strings.Contains(buf.String(), "Z") {
		t.Errorf("log = %q, want unknown label Z mentioned", buf.String())
	}
}

func TestOpen(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Dataset:        writeFile(t, "data.csv", csvFixture),
		CategoriesPath: writeFile(t, "categories.yaml", "categories:\n  - code: T\n    name: तत्पुरुष\n"),
		Model:          ModelConfig{ModelPath: filepath.Join(t.TempDir(), "model.onnx")},
	}
	svc, err := Open(context.Background(), cfg, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close()

	res, err := svc.Process("राजपुत्र")
	if err != nil {
		t.Fatal(err)
	}
	if res.Listing() != "राजपुत्र: तत्पुरुष" {
		t.Errorf("Listing = %q", res.Listing())
	}
	if svc.ModelStatus().Available {
		t.Error("model should be unavailable")
	}
	if !strings.Contains(buf.String(), "Loaded 2 compounds") {
		t.Errorf("log = %q", buf.String())
	}
	if _, ok := svc.Lookup(" माता-पिता "); !ok {
		t.Error("Lookup should trim the query")
	}
	if !strings.Contains(svc.Summary(), "2 compounds") {
		t.Errorf("Summary = %q", svc.Summary())
	}
}

func TestOpenColumnCandidates(t *testing.T) {
	t.Cleanup(func() { SetColumnCandidates(ColumnCandidates{}) })
	cfg := Config{
		Dataset:          writeFile(t, "data.csv", "samasword,sangna1,Middle,sangna2,Label\nराजपुत्र,राजा,का,पुत्र,T\n"),
		Model:            ModelConfig{ModelPath: filepath.Join(t.TempDir(), "model.onnx")},
		ColumnCandidates: &ColumnCandidates{Word: []string{"samasword"}},
	}
	svc, err := Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close()
	if _, ok := svc.Lookup("राजपुत्र"); !ok {
		t.Error("dataset should be keyed by the configured word column")
	}

	cfg.Dataset = writeFile(t, "plain.csv", csvFixture)
	cfg.ColumnCandidates = nil
	next, err := Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open without candidates: %v", err)
	}
	defer next.Close()
	if got := activeCandidates().Word; len(got) == 0 || got[0] != "Word" {
		t.Errorf("word candidates = %q, want the built-in names", got)
	}
}

func TestOpenMissingDataset(t *testing.T) {
	_, err := Open(context.Background(), Config{Dataset: "/nonexistent/samas.csv"}, nil)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
}

func TestServiceConcurrentProcess(t *testing.T) {
	svc, _ := newTestService(t, ExpandModeSpans)
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Process("राजपुत्र और माता-पिता")
			if err != nil || res.Expanded != "राजा का पुत्र और माता और पिता" {
				errs <- res.Expanded
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent Process = %q", got)
	}
}
