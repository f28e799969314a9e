package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
)

const tableName = "transactions"

var columns = []any{
	"id", "owner_id", "account_id", "category_id", "description", "amount", "kind", "date", "created_at",
}

// Transaction represents a transaction record. Amount is always positive; Kind
// decides which way it moved the account balance.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description *string
	Amount      money.Money
	Kind        category.Kind
	Date        time.Time
	CreatedAt   time.Time
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	OwnerID     uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description *string
	Amount      money.Money
	Kind        category.Kind
	Date        time.Time
}

// TransactionUpdate carries the editable fields. Amount and kind are fixed at creation.
type TransactionUpdate struct {
	Description omitnull.Val[string]
	Date        omit.Val[time.Time]
	AccountID   omit.Val[uuid.UUID]
	CategoryID  omitnull.Val[uuid.UUID]
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	OwnerID         *uuid.UUID
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}

type IWriter interface {
	IReader
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) (*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type transactionRow struct {
	ID          uuid.UUID       `db:"id"`
	OwnerID     uuid.UUID       `db:"owner_id"`
	AccountID   uuid.UUID       `db:"account_id"`
	CategoryID  uuid.NullUUID   `db:"category_id"`
	Description *string         `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Kind        string          `db:"kind"`
	Date        time.Time       `db:"date"`
	CreatedAt   time.Time       `db:"created_at"`
}

func rowToTransaction(row *transactionRow) *Transaction {
	txn := &Transaction{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		AccountID:   row.AccountID,
		Description: row.Description,
		Amount:      money.FromDecimal(row.Amount),
		Kind:        category.Kind(row.Kind),
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
	}
	if row.CategoryID.Valid {
		id := row.CategoryID.UUID
		txn.CategoryID = &id
	}
	return txn
}

func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
