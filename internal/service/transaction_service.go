package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/ownership"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	reader    *storage.Reader
	processor Processor
	now       func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(reader *storage.Reader, processor Processor) *TransactionService {
	return &TransactionService{reader: reader, processor: processor, now: time.Now}
}

// CreateTransaction records the transaction and moves its account balance.
func (s *TransactionService) CreateTransaction(ctx context.Context, p auth.Principal, create transaction.TransactionCreate) (*transaction.Transaction, error) {
	action := &actions.CreateTransaction{
		OwnerID:     p.ID,
		AccountID:   create.AccountID,
		CategoryID:  create.CategoryID,
		Description: create.Description,
		Amount:      create.Amount,
		Kind:        create.Kind,
		Date:        create.Date,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, p auth.Principal, id uuid.UUID) (*transaction.Transaction, error) {
	return ownership.Resolve[transaction.Transaction](ctx, "transaction", id, p.ID,
		s.reader.Transactions.FindByID,
		func(t *transaction.Transaction) uuid.UUID { return t.OwnerID },
	)
}

// ListTransactions returns a page of p's transactions, newest date first.
// A nil cursor returns all of them.
func (s *TransactionService) ListTransactions(ctx context.Context, p auth.Principal, cursor *TimelineCursor) ([]*transaction.Transaction, *TimelineCursor, error) {
	limit, offset, maxCreationTime := cursor.bounds(s.now())

	rows, err := s.reader.Transactions.List(ctx, &transaction.TransactionFilter{
		OwnerID:         &p.ID,
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

// UpdateTransaction edits description, date, account or category. The balance
// effect stays on the account the transaction was created against.
func (s *TransactionService) UpdateTransaction(ctx context.Context, p auth.Principal, id uuid.UUID, update transaction.TransactionUpdate) (*transaction.Transaction, error) {
	action := &actions.UpdateTransaction{OwnerID: p.ID, TransactionID: id, Update: update}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// DeleteTransaction removes the transaction and reverses its balance effect.
func (s *TransactionService) DeleteTransaction(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteTransaction{OwnerID: p.ID, TransactionID: id})
}
