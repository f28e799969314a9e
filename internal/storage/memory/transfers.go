package memory

import (
	"context"
	"slices"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/storage/record"
	"github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

type transfers struct {
	state func() *state
	clock *clock
}

var _ transfer.IWriter = (*transfers)(nil)

func (t *transfers) FindByID(_ context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	tr, ok := t.state().transfers[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	return &tr, nil
}

func (t *transfers) List(_ context.Context, filter *transfer.TransferFilter) ([]*transfer.Transfer, error) {
	var result []*transfer.Transfer
	for _, tr := range t.state().transfers {
		if filter != nil {
			if filter.OwnerID != nil && tr.OwnerID != *filter.OwnerID {
				continue
			}
			if filter.AccountID != nil && tr.SourceAccountID != *filter.AccountID && tr.DestinationAccountID != *filter.AccountID {
				continue
			}
			if filter.MaxCreationTime != nil && tr.CreatedAt.After(*filter.MaxCreationTime) {
				continue
			}
		}
		result = append(result, &tr)
	}
	slices.SortFunc(result, func(x, y *transfer.Transfer) int {
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

func (t *transfers) Insert(_ context.Context, create *transfer.TransferCreate) (*transfer.Transfer, error) {
	st := t.state()
	_, srcOK := st.accounts[create.SourceAccountID]
	_, dstOK := st.accounts[create.DestinationAccountID]
	if !srcOK || !dstOK {
		return nil, record.ErrReferenced
	}
	tr := transfer.Transfer{
		ID:                   newID(),
		OwnerID:              create.OwnerID,
		SourceAccountID:      create.SourceAccountID,
		DestinationAccountID: create.DestinationAccountID,
		Amount:               create.Amount,
		Date:                 create.Date,
		CreatedAt:            t.clock.now(),
	}
	st.transfers[tr.ID] = tr
	return &tr, nil
}

func (t *transfers) Delete(_ context.Context, id uuid.UUID) error {
	st := t.state()
	if _, ok := st.transfers[id]; !ok {
		return record.ErrNotFound
	}
	delete(st.transfers, id)
	return nil
}
