// Package store persists staging records and confirmed wardrobe items in
// SQLite. Functions follow the same shape throughout: they take a context and
// a database handle, wrap errors with what they were doing, and return nil
// (not an error) when a row doesn't exist.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Querier is the subset of database/sql operations the store needs. It is
// satisfied by both *sql.DB and *sql.Tx, so confirmation can run its writes
// inside one transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrDuplicateID is returned when creating a wardrobe item whose identifier
// already exists. The allocator should prevent this, but the store enforces
// it so a lost race can never silently overwrite an item.
var ErrDuplicateID = errors.New("identifier already exists")

// ErrNotPending is returned when mutating a staging record that has already
// reached a terminal status.
var ErrNotPending = errors.New("staging record is not pending")

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// encodeSeason serializes a season set for storage. nil becomes an empty set.
func encodeSeason(season []string) (string, error) {
	if season == nil {
		season = []string{}
	}
	data, err := json.Marshal(season)
	if err != nil {
		return "", fmt.Errorf("encoding season: %w", err)
	}
	return string(data), nil
}

// decodeSeason deserializes a stored season set.
func decodeSeason(raw string) ([]string, error) {
	var season []string
	if err := json.Unmarshal([]byte(raw), &season); err != nil {
		return nil, fmt.Errorf("decoding season: %w", err)
	}
	return season, nil
}
