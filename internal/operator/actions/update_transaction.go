package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// UpdateTransaction edits description, date, account and category. Amount and
// kind are fixed. Changing the account does not move the balance effect; a
// later delete reverses it on the account recorded at that time.
type UpdateTransaction struct {
	OwnerID       uuid.UUID
	TransactionID uuid.UUID
	Update        transaction.TransactionUpdate

	Result *transaction.Transaction
}

func (u *UpdateTransaction) ActionName() string { return "transaction.update" }

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := ownedTransaction(ctx, writer, u.OwnerID, u.TransactionID); err != nil {
		return err
	}

	if description, ok := u.Update.Description.Get(); ok {
		if err := validateDescription(&description); err != nil {
			return err
		}
	}
	if accountID, ok := u.Update.AccountID.Get(); ok {
		if _, err := ownedAccount(ctx, writer, u.OwnerID, accountID); err != nil {
			return err
		}
	}
	if categoryID, ok := u.Update.CategoryID.Get(); ok {
		if _, err := ownedCategory(ctx, writer, u.OwnerID, categoryID); err != nil {
			return err
		}
	}

	updated, err := writer.Transaction.Update(ctx, u.TransactionID, &u.Update)
	if err != nil {
		return err
	}

	u.Result = updated
	return nil
}
