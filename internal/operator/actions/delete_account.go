package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
	"github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

// DeleteAccount removes an account that no transaction or transfer references.
// Records pointing at a deleted account could never have their balance
// effect reversed.
type DeleteAccount struct {
	OwnerID   uuid.UUID
	AccountID uuid.UUID
}

func (d *DeleteAccount) ActionName() string { return "account.delete" }

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := ownedAccount(ctx, writer, d.OwnerID, d.AccountID); err != nil {
		return err
	}

	txns, err := writer.Transaction.List(ctx, &transaction.TransactionFilter{AccountID: &d.AccountID, Limit: 1})
	if err != nil {
		return err
	}
	if len(txns) > 0 {
		return apperr.BadRequest("account still has transactions")
	}

	transfers, err := writer.Transfer.List(ctx, &transfer.TransferFilter{AccountID: &d.AccountID, Limit: 1})
	if err != nil {
		return err
	}
	if len(transfers) > 0 {
		return apperr.BadRequest("account still has transfers")
	}

	err = writer.Account.Delete(ctx, d.AccountID)
	if errors.Is(err, record.ErrReferenced) {
		return apperr.BadRequest("account is still referenced")
	}
	return err
}
