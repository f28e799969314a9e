package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/ownership"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

// TransferCreate is a transfer request. A nil SourceAccountID draws from the
// caller's oldest account.
type TransferCreate struct {
	SourceAccountID      *uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Money
	Date                 time.Time
}

// TransferService handles transfer business logic.
type TransferService struct {
	reader    *storage.Reader
	processor Processor
	now       func() time.Time
}

func NewTransferService(reader *storage.Reader, processor Processor) *TransferService {
	return &TransferService{reader: reader, processor: processor, now: time.Now}
}

func (s *TransferService) CreateTransfer(ctx context.Context, p auth.Principal, create TransferCreate) (*transfer.Transfer, error) {
	action := &actions.CreateTransfer{
		OwnerID:              p.ID,
		SourceAccountID:      create.SourceAccountID,
		DestinationAccountID: create.DestinationAccountID,
		Amount:               create.Amount,
		Date:                 create.Date,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

func (s *TransferService) GetTransfer(ctx context.Context, p auth.Principal, id uuid.UUID) (*transfer.Transfer, error) {
	return ownership.Resolve[transfer.Transfer](ctx, "transfer", id, p.ID,
		s.reader.Transfers.FindByID,
		func(t *transfer.Transfer) uuid.UUID { return t.OwnerID },
	)
}

// ListTransfers returns a page of p's transfers, newest date first.
func (s *TransferService) ListTransfers(ctx context.Context, p auth.Principal, cursor *TimelineCursor) ([]*transfer.Transfer, *TimelineCursor, error) {
	return listTransfers(ctx, s.reader.Transfers, &p.ID, cursor, s.now())
}

// DeleteTransfer removes the transfer and reverses both legs.
func (s *TransferService) DeleteTransfer(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteTransfer{OwnerID: p.ID, TransferID: id})
}

func listTransfers(ctx context.Context, reader transfer.IReader, ownerID *uuid.UUID, cursor *TimelineCursor, now time.Time) ([]*transfer.Transfer, *TimelineCursor, error) {
	limit, offset, maxCreationTime := cursor.bounds(now)

	rows, err := reader.List(ctx, &transfer.TransferFilter{
		OwnerID:         ownerID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	rows, more := trim(rows, limit)
	return rows, cursor.next(offset, limit, maxCreationTime, more), nil
}
