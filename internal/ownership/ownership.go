// Package ownership resolves a record on behalf of a principal. Every
// single-record read and every mutation goes through Resolve.
package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

// FindFunc loads a record by id, returning record.ErrNotFound when it is absent.
type FindFunc[T any] func(ctx context.Context, id uuid.UUID) (*T, error)

// Resolve loads the record and checks that principalID owns it. A missing
// record is NotFound; a record owned by someone else is Forbidden. Existence
// is checked first.
func Resolve[T any](
	ctx context.Context,
	kind string,
	id uuid.UUID,
	principalID uuid.UUID,
	find FindFunc[T],
	ownerOf func(*T) uuid.UUID,
) (*T, error) {
	entity, err := find(ctx, id)
	if errors.Is(err, record.ErrNotFound) {
		return nil, apperr.NotFound("%s not found", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", kind, id, err)
	}
	if ownerOf(entity) != principalID {
		return nil, apperr.Forbidden("not authorized to access this %s", kind)
	}
	return entity, nil
}
