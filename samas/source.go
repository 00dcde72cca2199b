package samas

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// DatasetOptions controls how a dataset source is located and parsed.
type DatasetOptions struct {
	Columns ColumnConfig
	S3      S3Config
}

// LoadDataset loads the compound dictionary from source. Supported sources are local
// .csv, .tsv, .txt and .xlsx files, SQLite databases (.db, .sqlite, .sqlite3 or a
// sqlite:// URI) and s3://bucket/key objects. Any failure is returned as a *LoadError.
func LoadDataset(ctx context.Context, source string, opts DatasetOptions) (*Dataset, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, &LoadError{Source: "(empty)", Err: ErrUnsupportedType}
	}
	rows, err := loadRows(ctx, source, opts)
	if err != nil {
		return nil, loadErr(source, err)
	}
	ds := NewDataset(rows)
	if ds.Len() == 0 {
		return nil, &LoadError{Source: source, Err: ErrNoRows}
	}
	return ds, nil
}

func loadRows(ctx context.Context, source string, opts DatasetOptions) ([]DatasetRow, error) {
	switch {
	case strings.HasPrefix(source, "s3://"):
		return loadS3Rows(ctx, source, opts)
	case strings.HasPrefix(source, "sqlite://"), isSQLitePath(source):
		path, table := parseSQLiteSource(source)
		if opts.Columns.Table != "" {
			table = opts.Columns.Table
		}
		return loadSQLiteRows(ctx, path, table, opts.Columns)
	default:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ParseDatasetFile(source, opts.Columns)
	}
}

func isSQLitePath(source string) bool {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// DescribeSource returns a short human readable name for a dataset source.
func DescribeSource(source string) string {
	switch {
	case strings.HasPrefix(source, "s3://"):
		return source
	case strings.HasPrefix(source, "sqlite://"):
		path, table := parseSQLiteSource(source)
		return fmt.Sprintf("%s (%s)", filepath.Base(path), table)
	default:
		return filepath.Base(source)
	}
}
