// Package record holds the storage-level errors shared by every table package.
package record

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a lookup by key matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")
	// ErrReferenced is returned when a delete is blocked by a foreign key.
	ErrReferenced = errors.New("record is still referenced")
	// ErrOutOfRange is returned when a numeric value exceeds its column.
	ErrOutOfRange = errors.New("value out of range")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqNumericOutOfRange   = "22003"
)

// Translate maps driver errors onto the errors above. Other errors pass through.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrDuplicate
		case pqForeignKeyViolation:
			return ErrReferenced
		case pqNumericOutOfRange:
			return ErrOutOfRange
		}
	}
	return err
}

// RowsAffecter is satisfied by sql.Result.
type RowsAffecter interface {
	RowsAffected() (int64, error)
}

// RequireAffected returns ErrNotFound when a keyed update or delete touched no row.
func RequireAffected(result RowsAffecter) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
