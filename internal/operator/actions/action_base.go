package actions

import (
	"context"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/ownership"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
	"github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

// IAction is one mutation. Perform runs inside a unit of work; any error rolls
// the whole unit back.
type IAction interface {
	ActionName() string
	Perform(ctx context.Context, writer *storage.Writer) error
}

const (
	minNameLength        = 3
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// ownedAccount resolves an account for ownerID. Accounts are always locked
// because whatever follows may change their balance.
func ownedAccount(ctx context.Context, writer *storage.Writer, ownerID, accountID uuid.UUID) (*account.Account, error) {
	return ownership.Resolve[account.Account](ctx, "account", accountID, ownerID,
		writer.Account.FindByIDForUpdate,
		func(a *account.Account) uuid.UUID { return a.OwnerID },
	)
}

func ownedCategory(ctx context.Context, writer *storage.Writer, ownerID, categoryID uuid.UUID) (*category.Category, error) {
	return ownership.Resolve[category.Category](ctx, "category", categoryID, ownerID,
		writer.Category.FindByID,
		func(c *category.Category) uuid.UUID { return c.OwnerID },
	)
}

func ownedTransaction(ctx context.Context, writer *storage.Writer, ownerID, transactionID uuid.UUID) (*transaction.Transaction, error) {
	return ownership.Resolve[transaction.Transaction](ctx, "transaction", transactionID, ownerID,
		writer.Transaction.FindByID,
		func(t *transaction.Transaction) uuid.UUID { return t.OwnerID },
	)
}

func ownedTransfer(ctx context.Context, writer *storage.Writer, ownerID, transferID uuid.UUID) (*transfer.Transfer, error) {
	return ownership.Resolve[transfer.Transfer](ctx, "transfer", transferID, ownerID,
		writer.Transfer.FindByID,
		func(t *transfer.Transfer) uuid.UUID { return t.OwnerID },
	)
}

func validateName(field, name string) error {
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return apperr.BadRequest("%s must be between %d and %d characters", field, minNameLength, maxNameLength)
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		return apperr.BadRequest("description must be at most %d characters", maxDescriptionLength)
	}
	return nil
}

func validateAmount(amount money.Money) error {
	if !amount.IsPositive() {
		return apperr.BadRequest("amount must be greater than zero")
	}
	if !amount.InRange() {
		return apperr.BadRequest("amount must be at most %s", money.Max)
	}
	return nil
}

// validateCreditLimit enforces that only bank accounts carry a positive limit.
func validateCreditLimit(accountType account.AccountType, limit *money.Money) error {
	if limit == nil {
		return nil
	}
	if limit.IsNegative() {
		return apperr.BadRequest("credit limit must not be negative")
	}
	if !limit.InRange() {
		return apperr.BadRequest("credit limit must be at most %s", money.Max)
	}
	if limit.IsPositive() && accountType != account.AccountTypeBank {
		return apperr.BadRequest("credit limit can only be set on bank accounts")
	}
	return nil
}
