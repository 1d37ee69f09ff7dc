// Package gateway is the uniform select/insert/update wrapper around the club's table store.
//
// Every call is synchronous and may fail. Failures are returned as *Failure, whose message names
// the attempted action and the cause ("Error loading players: ..."), so screens can show it as-is.
// A failed Select still returns an empty, non-nil row slice. There is no retry.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrRowNotFound is returned by Update when no row has the given id.
var ErrRowNotFound = errors.New("no row with that id")

// Backend is a concrete table store (hosted REST API or local SQLite).
type Backend interface {
	Select(ctx context.Context, table string) ([]Row, error)
	Insert(ctx context.Context, table string, rows []Row) ([]Row, error)
	Update(ctx context.Context, table string, id int64, fields Row) error
}

// Failure is a user-visible description of a failed store call.
type Failure struct {
	Action string // e.g. "loading players", "saving player"
	Cause  error
}

// Error implements error.
func (f *Failure) Error() string {
	return fmt.Sprintf("Error %s: %v", f.Action, f.Cause)
}

// Unwrap exposes the backend error.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// AsFailure unwraps err into a *Failure.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Gateway validates calls against Schema and turns backend errors into Failures.
type Gateway struct {
	backend Backend
}

// New wraps a backend.
func New(backend Backend) *Gateway {
	return &Gateway{backend: backend}
}

// Select returns every row of table in store order.
// PRE: table is in Schema
// POST: on failure returns an empty slice and a *Failure
func (g *Gateway) Select(ctx context.Context, table, action string) ([]Row, error) {
	if _, err := CheckTable(table); err != nil {
		return []Row{}, g.fail("select", table, action, err)
	}
	rows, err := g.backend.Select(ctx, table)
	if err != nil {
		return []Row{}, g.fail("select", table, action, err)
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// Insert writes rows in one backend call and returns the created rows (with ids).
// The call is not atomic across rows on every backend; a failure may leave a prefix committed.
// PRE: len(rows) > 0; every column is in Schema
// POST: on failure returns nil rows and a *Failure
func (g *Gateway) Insert(ctx context.Context, table string, rows []Row, action string) ([]Row, error) {
	if len(rows) == 0 {
		return nil, g.fail("insert", table, action, errors.New("nothing to insert"))
	}
	for _, r := range rows {
		if err := CheckRow(table, r); err != nil {
			return nil, g.fail("insert", table, action, err)
		}
	}
	created, err := g.backend.Insert(ctx, table, rows)
	if err != nil {
		return nil, g.fail("insert", table, action, err)
	}
	slog.Debug("gateway_event", "event", "inserted", "table", table, "rows", len(created))
	return created, nil
}

// InsertOne writes a single row and returns it as created by the store.
func (g *Gateway) InsertOne(ctx context.Context, table string, row Row, action string) (Row, error) {
	created, err := g.Insert(ctx, table, []Row{row}, action)
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, g.fail("insert", table, action, errors.New("store returned no created row"))
	}
	return created[0], nil
}

// Update sets the given fields on the row with id. Fields not named are left unchanged.
// PRE: id > 0; every column is in Schema
// POST: on failure returns a *Failure; nothing is rolled back
func (g *Gateway) Update(ctx context.Context, table string, id int64, fields Row, action string) error {
	if id <= 0 {
		return g.fail("update", table, action, ErrRowNotFound)
	}
	if err := CheckRow(table, fields); err != nil {
		return g.fail("update", table, action, err)
	}
	if err := g.backend.Update(ctx, table, id, fields); err != nil {
		return g.fail("update", table, action, err)
	}
	return nil
}

func (g *Gateway) fail(op, table, action string, err error) error {
	slog.Warn("gateway_event", "event", op+"_failed", "table", table, "action", action, "error", err.Error())
	return &Failure{Action: action, Cause: err}
}
