package service

import (
	"context"
	"time"

	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

const defaultLimit = 20

// Processor runs an action in its own unit of work.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Account     *AccountService
	Category    *CategoryService
	Transaction *TransactionService
	Transfer    *TransferService
	Admin       *AdminService
}

// NewService wires every service to the same reader and processor.
func NewService(reader *storage.Reader, processor Processor) *Service {
	return &Service{
		Account:     NewAccountService(reader, processor),
		Category:    NewCategoryService(reader, processor),
		Transaction: NewTransactionService(reader, processor),
		Transfer:    NewTransferService(reader, processor),
		Admin:       NewAdminService(reader),
	}
}

// Cursor identifies a position in a paginated result set.
type Cursor struct {
	Position int
	Limit    int
}

// TimelineCursor pages records ordered by date. MaxCreationTime pins the
// result set to what existed when the first page was read, so records created
// while paging do not shift later pages.
type TimelineCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// bounds returns the limit and offset for a cursor. A nil cursor reads
// everything.
func (c *Cursor) bounds() (limit, offset int) {
	if c == nil {
		return 0, 0
	}
	limit = c.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return limit, c.Position
}

func (c *Cursor) next(offset, limit int, more bool) *Cursor {
	if !more {
		return nil
	}
	return &Cursor{Position: offset + limit, Limit: limit}
}

// bounds is Cursor.bounds plus the creation-time ceiling. When the caller has
// not pinned one yet, now becomes the ceiling for this and every later page.
func (c *TimelineCursor) bounds(now time.Time) (limit, offset int, maxCreationTime *time.Time) {
	if c == nil {
		return 0, 0, nil
	}
	limit = c.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	ceiling := c.MaxCreationTime
	if ceiling.IsZero() {
		ceiling = now
	}
	return limit, c.Position, &ceiling
}

func (c *TimelineCursor) next(offset, limit int, maxCreationTime *time.Time, more bool) *TimelineCursor {
	if !more {
		return nil
	}
	return &TimelineCursor{
		Position:        offset + limit,
		Limit:           limit,
		MaxCreationTime: *maxCreationTime,
	}
}

// trim cuts a page fetched with one extra row back to limit and reports
// whether another page exists.
func trim[T any](rows []*T, limit int) ([]*T, bool) {
	if limit <= 0 || len(rows) <= limit {
		return rows, false
	}
	return rows[:limit], true
}
