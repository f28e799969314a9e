package category

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/money"
)

const tableName = "categories"

var columns = []any{"id", "owner_id", "name", "kind", "created_at"}

// Kind says whether money flowing through a category leaves or enters an account.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Signed returns the balance delta an amount of this kind produces:
// expenses subtract, income adds.
func (k Kind) Signed(amount money.Money) money.Money {
	if k == KindExpense {
		return amount.Neg()
	}
	return amount
}

// Category represents a category record.
type Category struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Kind      Kind
	CreatedAt time.Time
}

// CategoryFilter specifies filters for listing categories.
type CategoryFilter struct {
	OwnerID *uuid.UUID
	Kind    *Kind
	Limit   int
	Offset  int
}

type CategoryCreate struct {
	OwnerID uuid.UUID
	Name    string
	Kind    Kind
}

type CategoryUpdate struct {
	Name omit.Val[string]
	Kind omit.Val[Kind]
}

type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	// FindByName returns record.ErrNotFound when the owner has no category
	// with that name and kind.
	FindByName(ctx context.Context, ownerID uuid.UUID, name string, kind Kind) (*Category, error)
	List(ctx context.Context, filter *CategoryFilter) ([]*Category, error)
}

type IWriter interface {
	IReader
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
	Update(ctx context.Context, id uuid.UUID, update *CategoryUpdate) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRow struct {
	ID        uuid.UUID `db:"id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Name      string    `db:"name"`
	Kind      string    `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

func rowToCategory(row *categoryRow) *Category {
	return &Category{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Kind:      Kind(row.Kind),
		CreatedAt: row.CreatedAt,
	}
}
