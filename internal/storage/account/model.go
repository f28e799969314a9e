package account

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/money"
)

const tableName = "accounts"

var columns = []any{
	"id", "owner_id", "name", "type", "initial_balance", "current_balance", "credit_limit", "created_at",
}

// AccountType is the closed set of account kinds.
type AccountType string

const (
	AccountTypeWallet     AccountType = "wallet"
	AccountTypeBank       AccountType = "bank"
	AccountTypeVault      AccountType = "vault"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeWallet, AccountTypeBank, AccountTypeVault, AccountTypeInvestment, AccountTypeOther:
		return true
	}
	return false
}

// Account represents an account record.
type Account struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Type           AccountType
	InitialBalance money.Money
	CurrentBalance money.Money
	CreditLimit    *money.Money
	CreatedAt      time.Time
}

// AccountFilter specifies filters for listing accounts.
// A positive Limit fetches one extra row so callers can tell whether another page exists.
type AccountFilter struct {
	OwnerID *uuid.UUID
	Limit   int
	Offset  int
}

// AccountCreate is the input for creating a new account. The current balance
// starts at InitialBalance.
type AccountCreate struct {
	OwnerID        uuid.UUID
	Name           string
	Type           AccountType
	InitialBalance money.Money
	CreditLimit    *money.Money
}

// AccountUpdate holds the editable fields. Unset fields are left untouched.
type AccountUpdate struct {
	Name        omit.Val[string]
	Type        omit.Val[AccountType]
	CreditLimit omitnull.Val[money.Money]
}

// IReader defines read access to accounts.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
}

// IWriter defines account access inside a unit of work.
// FindByIDForUpdate locks the row until the unit of work ends.
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (*Account, error)
	Update(ctx context.Context, id uuid.UUID, update *AccountUpdate) (*Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance money.Money) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type accountRow struct {
	ID             uuid.UUID           `db:"id"`
	OwnerID        uuid.UUID           `db:"owner_id"`
	Name           string              `db:"name"`
	Type           string              `db:"type"`
	InitialBalance decimal.Decimal     `db:"initial_balance"`
	CurrentBalance decimal.Decimal     `db:"current_balance"`
	CreditLimit    decimal.NullDecimal `db:"credit_limit"`
	CreatedAt      time.Time           `db:"created_at"`
}

func rowToAccount(row *accountRow) *Account {
	acc := &Account{
		ID:             row.ID,
		OwnerID:        row.OwnerID,
		Name:           row.Name,
		Type:           AccountType(row.Type),
		InitialBalance: money.FromDecimal(row.InitialBalance),
		CurrentBalance: money.FromDecimal(row.CurrentBalance),
		CreatedAt:      row.CreatedAt,
	}
	if row.CreditLimit.Valid {
		limit := money.FromDecimal(row.CreditLimit.Decimal)
		acc.CreditLimit = &limit
	}
	return acc
}

func nullableDecimal(m *money.Money) decimal.NullDecimal {
	if m == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: m.Decimal(), Valid: true}
}
