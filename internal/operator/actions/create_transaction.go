package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// CreateTransaction records an expense or income and moves the account
// balance by it: expenses subtract, income adds.
type CreateTransaction struct {
	OwnerID     uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description *string
	Amount      money.Money
	Kind        category.Kind
	Date        time.Time

	Result *transaction.Transaction
}

func (t *CreateTransaction) ActionName() string { return "transaction.create" }

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateAmount(t.Amount); err != nil {
		return err
	}
	if !t.Kind.Valid() {
		return apperr.BadRequest("unknown transaction kind %q", t.Kind)
	}
	if err := validateDescription(t.Description); err != nil {
		return err
	}

	if _, err := ownedAccount(ctx, writer, t.OwnerID, t.AccountID); err != nil {
		return err
	}
	if t.CategoryID != nil {
		if _, err := ownedCategory(ctx, writer, t.OwnerID, *t.CategoryID); err != nil {
			return err
		}
	}

	txn, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		OwnerID:     t.OwnerID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		Description: t.Description,
		Amount:      t.Amount,
		Kind:        t.Kind,
		Date:        t.Date,
	})
	if err != nil {
		return err
	}

	if _, err := writer.Ledger.ApplyDelta(ctx, t.AccountID, t.Kind.Signed(t.Amount)); err != nil {
		return err
	}

	t.Result = txn
	return nil
}
