package document

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hengadev/wxf/internal/wxferr"
)

const listTablesQuery = `
	SELECT name FROM sqlite_master
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name`

// ReadSQLite opens the database at path read-only and returns one entry per
// user table, mapping the table name to its rows. Each row is a
// map[string]any keyed by column name.
func ReadSQLite(path string) (any, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, wxferr.NewIOError(wxferr.Read, path, err)
	}

	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at '%s': %w", path, err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, wxferr.NewSyntaxError("sqlite", err)
	}

	tables, err := listTables(db)
	if err != nil {
		return nil, wxferr.NewSyntaxError("sqlite", err)
	}

	doc := make(map[string]any, len(tables))
	for _, table := range tables {
		rows, err := readTable(db, table)
		if err != nil {
			return nil, fmt.Errorf("failed to read table '%s' from '%s': %w", table, path, err)
		}
		doc[table] = rows
	}
	return doc, nil
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(listTablesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func readTable(db *sql.DB, table string) ([]any, error) {
	query := fmt.Sprintf(`SELECT * FROM "%s"`, strings.ReplaceAll(table, `"`, `""`))
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	result := []any{}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = columnValue(types[i], values[i])
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// columnValue keeps BLOB columns as bytes and reports text columns as
// strings whichever representation the driver handed back.
func columnValue(ct *sql.ColumnType, v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	switch strings.ToUpper(ct.DatabaseTypeName()) {
	case "BLOB", "":
		return b
	default:
		return string(b)
	}
}
