package transfer

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/money"
)

const tableName = "transfers"

var columns = []any{
	"id", "owner_id", "source_account_id", "destination_account_id", "amount", "date", "created_at",
}

// Transfer moves Amount from the source account to the destination account.
// Transfers are immutable once recorded.
type Transfer struct {
	ID                   uuid.UUID
	OwnerID              uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Money
	Date                 time.Time
	CreatedAt            time.Time
}

type TransferCreate struct {
	OwnerID              uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Money
	Date                 time.Time
}

// TransferFilter specifies filters for listing transfers. AccountID matches
// either leg.
type TransferFilter struct {
	OwnerID         *uuid.UUID
	AccountID       *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transfer, error)
	List(ctx context.Context, filter *TransferFilter) ([]*Transfer, error)
}

type IWriter interface {
	IReader
	Insert(ctx context.Context, create *TransferCreate) (*Transfer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type transferRow struct {
	ID                   uuid.UUID       `db:"id"`
	OwnerID              uuid.UUID       `db:"owner_id"`
	SourceAccountID      uuid.UUID       `db:"source_account_id"`
	DestinationAccountID uuid.UUID       `db:"destination_account_id"`
	Amount               decimal.Decimal `db:"amount"`
	Date                 time.Time       `db:"date"`
	CreatedAt            time.Time       `db:"created_at"`
}

func rowToTransfer(row *transferRow) *Transfer {
	return &Transfer{
		ID:                   row.ID,
		OwnerID:              row.OwnerID,
		SourceAccountID:      row.SourceAccountID,
		DestinationAccountID: row.DestinationAccountID,
		Amount:               money.FromDecimal(row.Amount),
		Date:                 row.Date,
		CreatedAt:            row.CreatedAt,
	}
}
