// Package sqlite reads the respondent table from a single SQLite file.
package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"cogdash/internal"
	"cogdash/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// TableReader reads every row of one table, opening the file read-only
type TableReader struct {
	path  string
	table string
	log   *internal.Logger
}

// NewTableReader creates a reader for table inside the SQLite file at path
func NewTableReader(path, table string) *TableReader {
	return &TableReader{
		path:  path,
		table: table,
		log:   internal.DefaultLogger.With("SQLiteReader"),
	}
}

// IsSQLiteFile reports whether path has a SQLite file extension
func IsSQLiteFile(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ReadData loads the table; the connection is closed before returning
func (r *TableReader) ReadData(ctx context.Context) (*ports.RawData, error) {
	if _, err := os.Stat(r.path); err != nil {
		return nil, fmt.Errorf("SQLite file not accessible: %w", err)
	}
	if r.table == "" {
		return nil, fmt.Errorf("no table configured for %s", r.path)
	}

	db, err := sqlx.Open("sqlite3", r.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite file: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, "SELECT * FROM "+quoteIdent(r.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", r.table, err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", r.table, err)
	}

	data := &ports.RawData{Headers: headers}
	for rows.Next() {
		values := make(map[string]interface{}, len(headers))
		if err := rows.MapScan(values); err != nil {
			return nil, fmt.Errorf("failed to scan row %d of %s: %w", len(data.Rows)+1, r.table, err)
		}
		row := make(ports.RawRow, len(values))
		for col, v := range values {
			row[col] = cellText(v)
		}
		data.Rows = append(data.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table %s: %w", r.table, err)
	}

	r.log.Debug("Read %d rows from %s.%s", len(data.Rows), r.path, r.table)
	return data, nil
}

func (r *TableReader) dsn() string {
	return "file:" + (&url.URL{Path: r.path}).EscapedPath() + "?mode=ro"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// cellText renders a scanned SQLite value the way it would appear in a CSV export
func cellText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []byte:
		return strings.TrimSpace(string(t))
	case string:
		return strings.TrimSpace(t)
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(t)
	}
}
