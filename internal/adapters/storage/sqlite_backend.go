package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"tennisclub/internal/adapters/storage/gateway"
)

// SQLiteBackend implements gateway.Backend on a local SQLite database.
type SQLiteBackend struct {
	db SQLDB
}

// Compile-time check that *SQLiteBackend satisfies gateway.Backend.
var _ gateway.Backend = (*SQLiteBackend)(nil)

// NewSQLiteBackend creates a backend over an initialized database.
// PRE: InitDB has run on db
func NewSQLiteBackend(db SQLDB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

// Select returns every row of table ordered by id.
// PRE: table is in gateway.Schema
// POST: JSON columns are decoded to []any
func (b *SQLiteBackend) Select(ctx context.Context, table string) ([]gateway.Row, error) {
	schema, err := gateway.CheckTable(table)
	if err != nil {
		return nil, err
	}
	rows, err := b.db.QueryContext(ctx, "SELECT * FROM "+table+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows, schema)
}

// Insert writes rows in a single multi-row INSERT and returns them with their ids.
// PRE: len(rows) > 0; columns are in gateway.Schema
// POST: all rows committed or none
func (b *SQLiteBackend) Insert(ctx context.Context, table string, rows []gateway.Row) ([]gateway.Row, error) {
	schema, err := gateway.CheckTable(table)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("nothing to insert")
	}

	cols := unionColumns(rows)
	for _, c := range cols {
		if !schema.Has(c) {
			return nil, fmt.Errorf("unknown column %q in table %q", c, table)
		}
	}

	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"
	placeholders := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(cols))
	for i, r := range rows {
		placeholders[i] = rowPlaceholder
		for _, c := range cols {
			v, err := encodeValue(schema, c, r[c])
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s RETURNING *",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
	if len(cols) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", table)
	}

	result, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer result.Close()
	created, err := scanRows(result, schema)
	if err != nil {
		return nil, err
	}
	// RETURNING order is unspecified; ids are assigned in insertion order.
	sort.SliceStable(created, func(i, j int) bool {
		return created[i].Int64("id") < created[j].Int64("id")
	})
	return created, nil
}

// Update sets fields on the row with the given id.
// PRE: id > 0; fields non-empty and in gateway.Schema
// POST: returns gateway.ErrRowNotFound if no row matched
func (b *SQLiteBackend) Update(ctx context.Context, table string, id int64, fields gateway.Row) error {
	schema, err := gateway.CheckTable(table)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return errors.New("nothing to update")
	}
	if err := gateway.CheckRow(table, fields); err != nil {
		return err
	}

	cols := unionColumns([]gateway.Row{fields})
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = c + " = ?"
		v, err := encodeValue(schema, c, fields[c])
		if err != nil {
			return err
		}
		args = append(args, v)
	}
	args = append(args, id)

	res, err := b.db.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", ")), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return gateway.ErrRowNotFound
	}
	return nil
}

// unionColumns returns the sorted set of keys across rows.
func unionColumns(rows []gateway.Row) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range rows {
		for c := range r {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// encodeValue converts a row value to a driver argument.
func encodeValue(schema gateway.TableSchema, col string, v any) (any, error) {
	if !schema.JSON[col] || v == nil {
		return v, nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", col, err)
	}
	return string(b), nil
}

// scanRows reads every row into a gateway.Row keyed by column name.
func scanRows(rows *sql.Rows, schema gateway.TableSchema) ([]gateway.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := []gateway.Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(gateway.Row, len(cols))
		for i, c := range cols {
			v := vals[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			if s, ok := v.(string); ok && schema.JSON[c] {
				var decoded []any
				if err := json.Unmarshal([]byte(s), &decoded); err == nil {
					v = decoded
				}
			}
			row[c] = v
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
