package samas

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

const defaultSQLiteTable = "samas"

// parseSQLiteSource splits "sqlite://path/to.db?table=name" or a bare database path
// into the file path and table name.
func parseSQLiteSource(source string) (string, string) {
	table := defaultSQLiteTable
	if !strings.HasPrefix(source, "sqlite://") {
		return source, table
	}
	rest := strings.TrimPrefix(source, "sqlite://")
	path := rest
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		path = rest[:i]
		if q, err := url.ParseQuery(rest[i+1:]); err == nil {
			if t := strings.TrimSpace(q.Get("table")); t != "" {
				table = t
			}
		}
	}
	return path, table
}

// loadSQLiteRows reads every row of table and resolves columns by name just like a
// tabular file with a header.
func loadSQLiteRows(ctx context.Context, path, table string, cols ColumnConfig) ([]DatasetRow, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	records, err := querySQLiteRecords(ctx, db, table)
	if err != nil {
		return nil, err
	}
	return ParseRecords(records, cols)
}

func querySQLiteRecords(ctx context.Context, db *sql.DB, table string) ([][]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	records := [][]string{names}
	for rows.Next() {
		cells := make([]sql.NullString, len(names))
		dest := make([]any, len(names))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		rec := make([]string, len(names))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
