package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

// DeleteTransfer removes the record and reverses both legs. The destination is
// not checked for sufficient balance and may go negative.
type DeleteTransfer struct {
	OwnerID    uuid.UUID
	TransferID uuid.UUID
}

func (d *DeleteTransfer) ActionName() string { return "transfer.delete" }

func (d *DeleteTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	tr, err := ownedTransfer(ctx, writer, d.OwnerID, d.TransferID)
	if err != nil {
		return err
	}

	err = writer.Transfer.Delete(ctx, tr.ID)
	if errors.Is(err, record.ErrNotFound) {
		return apperr.NotFound("transfer not found")
	}
	if err != nil {
		return err
	}

	// reversing is a transfer of the same amount the other way
	return applyLegs(ctx, writer, tr.DestinationAccountID, tr.SourceAccountID, tr.Amount)
}
