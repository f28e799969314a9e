package memory

import (
	"context"
	"slices"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/storage/record"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

type transactions struct {
	state func() *state
	clock *clock
}

var _ transaction.IWriter = (*transactions)(nil)

func (t *transactions) FindByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	txn, ok := t.state().transactions[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	return &txn, nil
}

func (t *transactions) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	var result []*transaction.Transaction
	for _, txn := range t.state().transactions {
		if filter != nil {
			if filter.OwnerID != nil && txn.OwnerID != *filter.OwnerID {
				continue
			}
			if filter.AccountID != nil && txn.AccountID != *filter.AccountID {
				continue
			}
			if filter.CategoryID != nil && (txn.CategoryID == nil || *txn.CategoryID != *filter.CategoryID) {
				continue
			}
			if filter.MaxCreationTime != nil && txn.CreatedAt.After(*filter.MaxCreationTime) {
				continue
			}
		}
		result = append(result, &txn)
	}
	slices.SortFunc(result, func(x, y *transaction.Transaction) int {
		if c := y.Date.Compare(x.Date); c != 0 {
			return c
		}
		if c := y.CreatedAt.Compare(x.CreatedAt); c != 0 {
			return c
		}
		return compareUUID(y.ID, x.ID)
	})
	if filter != nil {
		result = page(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

func (t *transactions) Insert(_ context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	st := t.state()
	if _, ok := st.accounts[create.AccountID]; !ok {
		return nil, record.ErrReferenced
	}
	if create.CategoryID != nil {
		if _, ok := st.categories[*create.CategoryID]; !ok {
			return nil, record.ErrReferenced
		}
	}
	txn := transaction.Transaction{
		ID:          newID(),
		OwnerID:     create.OwnerID,
		AccountID:   create.AccountID,
		CategoryID:  create.CategoryID,
		Description: create.Description,
		Amount:      create.Amount,
		Kind:        create.Kind,
		Date:        create.Date,
		CreatedAt:   t.clock.now(),
	}
	st.transactions[txn.ID] = txn
	return &txn, nil
}

func (t *transactions) Update(_ context.Context, id uuid.UUID, update *transaction.TransactionUpdate) (*transaction.Transaction, error) {
	st := t.state()
	txn, ok := st.transactions[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	if update.Description.IsNull() {
		txn.Description = nil
	} else if description, ok := update.Description.Get(); ok {
		txn.Description = &description
	}
	if date, ok := update.Date.Get(); ok {
		txn.Date = date
	}
	if accountID, ok := update.AccountID.Get(); ok {
		if _, exists := st.accounts[accountID]; !exists {
			return nil, record.ErrReferenced
		}
		txn.AccountID = accountID
	}
	if update.CategoryID.IsNull() {
		txn.CategoryID = nil
	} else if categoryID, ok := update.CategoryID.Get(); ok {
		if _, exists := st.categories[categoryID]; !exists {
			return nil, record.ErrReferenced
		}
		txn.CategoryID = &categoryID
	}
	st.transactions[id] = txn
	return &txn, nil
}

func (t *transactions) Delete(_ context.Context, id uuid.UUID) error {
	st := t.state()
	if _, ok := st.transactions[id]; !ok {
		return record.ErrNotFound
	}
	delete(st.transactions, id)
	return nil
}
