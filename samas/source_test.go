package samas

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func createSQLiteFixture(t *testing.T, table string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samas.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	stmts := []string{
		`CREATE TABLE ` + quoteIdent(table) + ` (Word TEXT, sangna1 TEXT, Middle TEXT, sangna2 TEXT, Label TEXT)`,
		`INSERT INTO ` + quoteIdent(table) + ` VALUES ('राजपुत्र', 'राजा', 'का', 'पुत्र', 'T')`,
		`INSERT INTO ` + quoteIdent(table) + ` VALUES ('माता-पिता', 'माता', 'और', 'पिता', 'D')`,
		`INSERT INTO ` + quoteIdent(table) + ` VALUES (NULL, 'x', 'y', 'z', 'T')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestLoadDatasetSQLite(t *testing.T) {
	ctx := context.Background()

	path := createSQLiteFixture(t, defaultSQLiteTable)
	ds, err := LoadDataset(ctx, path, DatasetOptions{})
	if err != nil {
		t.Fatalf("LoadDataset(%s): %v", path, err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ds.Len())
	}
	row, ok := ds.Lookup("माता-पिता")
	if !ok || row.Meaning() != "माता और पिता" {
		t.Errorf("Lookup = %+v, %v", row, ok)
	}

	custom := createSQLiteFixture(t, "words")
	ds, err = LoadDataset(ctx, "sqlite://"+custom+"?table=words", DatasetOptions{})
	if err != nil {
		t.Fatalf("LoadDataset uri: %v", err)
	}
	if !ds.Contains("राजपुत्र") {
		t.Error("expected राजपुत्र from custom table")
	}

	_, err = LoadDataset(ctx, "sqlite://"+custom+"?table=missing", DatasetOptions{})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
}

func TestLoadDatasetFileSourcesAgree(t *testing.T) {
	ctx := context.Background()
	csvPath := writeFile(t, "data.csv", csvFixture)
	dbPath := createSQLiteFixture(t, defaultSQLiteTable)

	fromCSV, err := LoadDataset(ctx, csvPath, DatasetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	fromDB, err := LoadDataset(ctx, dbPath, DatasetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	a, b := fromCSV.Rows(), fromDB.Rows()
	if len(a) != len(b) {
		t.Fatalf("csv has %d rows, sqlite %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("row %d: csv %+v, sqlite %+v", i, a[i], b[i])
		}
	}
}

func TestLoadDatasetErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{name: "empty source", source: "  ", wantErr: ErrUnsupportedType},
		{name: "unknown extension", source: writeFile(t, "data.json", "{}"), wantErr: ErrUnsupportedType},
		{name: "header only", source: writeFile(t, "empty.csv", "Word,sangna1,Middle,sangna2,Label\n"), wantErr: ErrNoRows},
		{name: "missing file", source: filepath.Join(t.TempDir(), "nope.xlsx")},
		{name: "bad s3 uri", source: "s3://bucket-only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDataset(ctx, tt.source, DatasetOptions{})
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("err = %v, want *LoadError", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

type fakeObjectGetter struct {
	body   string
	bucket string
	key    string
	err    error
}

func (f *fakeObjectGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestLoadDatasetS3(t *testing.T) {
	fake := &fakeObjectGetter{body: csvFixture}
	var gotCfg S3Config
	orig := newS3Client
	newS3Client = func(_ context.Context, cfg S3Config) (objectGetter, error) {
		gotCfg = cfg
		return fake, nil
	}
	t.Cleanup(func() { newS3Client = orig })

	opts := DatasetOptions{S3: S3Config{Region: "ap-south-1", Endpoint: "http://localhost:9000", PathStyle: true}}
	ds, err := LoadDataset(context.Background(), "s3://corpora/hindi/samas.csv", opts)
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if fake.bucket != "corpora" || fake.key != "hindi/samas.csv" {
		t.Errorf("GetObject(%q, %q)", fake.bucket, fake.key)
	}
	if gotCfg.Endpoint != "http://localhost:9000" || !gotCfg.PathStyle {
		t.Errorf("client config = %+v", gotCfg)
	}
	if ds.Len() != 2 {
		t.Errorf("Len = %d, want 2", ds.Len())
	}

	fake.err = errors.New("access denied")
	_, err = LoadDataset(context.Background(), "s3://corpora/hindi/samas.csv", opts)
	var le *LoadError
	if !errors.As(err, &le) || le.Source != "s3://corpora/hindi/samas.csv" {
		t.Errorf("err = %v, want *LoadError for the uri", err)
	}
}

func TestParseSourceHelpers(t *testing.T) {
	path, table := parseSQLiteSource("sqlite:///data/words.db?table=samas_v2")
	if path != "/data/words.db" || table != "samas_v2" {
		t.Errorf("parseSQLiteSource = %q, %q", path, table)
	}
	path, table = parseSQLiteSource("words.sqlite")
	if path != "words.sqlite" || table != defaultSQLiteTable {
		t.Errorf("parseSQLiteSource bare = %q, %q", path, table)
	}
	if _, _, err := parseS3URI("s3://bucket/"); err == nil {
		t.Error("expected error for s3 uri without key")
	}
	if got := quoteIdent(`we"ird`); got != `"we""ird"` {
		t.Errorf("quoteIdent = %s", got)
	}
	if got := DescribeSource("/tmp/x/samas_hindi_dataset.xlsx"); got != "samas_hindi_dataset.xlsx" {
		t.Errorf("DescribeSource = %q", got)
	}
}
