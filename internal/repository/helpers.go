package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned (wrapped) when a lookup by id matches no row.
var ErrNotFound = errors.New("not found")

const dateLayout = "2006-01-02"

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// parseNullableTime parses a sql.NullString into a time.Time using the given
// layout. Returns the zero time if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullableDate converts a zero time to SQL NULL, otherwise a date string.
func nullableDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

// parseDecimal reads a TEXT money column. Malformed values read as zero so a
// hand-edited database never blocks the balance.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// notFound maps sql.ErrNoRows onto ErrNotFound for the named entity.
func notFound(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &notFoundError{entity: entity}
	}
	return err
}

type notFoundError struct{ entity string }

func (e *notFoundError) Error() string { return e.entity + ": " + ErrNotFound.Error() }
func (e *notFoundError) Unwrap() error { return ErrNotFound }

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// expectOneRow turns an update that matched nothing into ErrNotFound.
func expectOneRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s update: %w", entity, err)
	}
	if n == 0 {
		return &notFoundError{entity: entity}
	}
	return nil
}
