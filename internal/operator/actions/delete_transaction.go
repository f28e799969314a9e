package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

// DeleteTransaction removes the record and reverses its balance effect on the
// account it was recorded against.
type DeleteTransaction struct {
	OwnerID       uuid.UUID
	TransactionID uuid.UUID
}

func (d *DeleteTransaction) ActionName() string { return "transaction.delete" }

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	txn, err := ownedTransaction(ctx, writer, d.OwnerID, d.TransactionID)
	if err != nil {
		return err
	}

	// deleting first takes the row lock, so a concurrent delete of the same
	// record finds nothing and rolls back instead of reversing twice
	err = writer.Transaction.Delete(ctx, txn.ID)
	if errors.Is(err, record.ErrNotFound) {
		return apperr.NotFound("transaction not found")
	}
	if err != nil {
		return err
	}

	_, err = writer.Ledger.ApplyDelta(ctx, txn.AccountID, txn.Kind.Signed(txn.Amount).Neg())
	return err
}
