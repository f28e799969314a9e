package memory

import (
	"context"
	"slices"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

type accounts struct {
	state func() *state
	clock *clock
}

var _ account.IWriter = (*accounts)(nil)

func (a *accounts) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	acc, ok := a.state().accounts[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	return &acc, nil
}

// FindByIDForUpdate needs no row lock: units of work are already serialized.
func (a *accounts) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return a.FindByID(ctx, id)
}

func (a *accounts) List(_ context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	var result []*account.Account
	for _, acc := range a.state().accounts {
		if filter != nil && filter.OwnerID != nil && acc.OwnerID != *filter.OwnerID {
			continue
		}
		result = append(result, &acc)
	}
	slices.SortFunc(result, func(x, y *account.Account) int {
		if c := x.CreatedAt.Compare(y.CreatedAt); c != 0 {
			return c
		}
		return compareUUID(x.ID, y.ID)
	})
	if filter != nil {
		result = page(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

func (a *accounts) Insert(_ context.Context, create *account.AccountCreate) (*account.Account, error) {
	acc := account.Account{
		ID:             newID(),
		OwnerID:        create.OwnerID,
		Name:           create.Name,
		Type:           create.Type,
		InitialBalance: create.InitialBalance,
		CurrentBalance: create.InitialBalance,
		CreditLimit:    create.CreditLimit,
		CreatedAt:      a.clock.now(),
	}
	a.state().accounts[acc.ID] = acc
	return &acc, nil
}

func (a *accounts) Update(_ context.Context, id uuid.UUID, update *account.AccountUpdate) (*account.Account, error) {
	st := a.state()
	acc, ok := st.accounts[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	if name, ok := update.Name.Get(); ok {
		acc.Name = name
	}
	if accountType, ok := update.Type.Get(); ok {
		acc.Type = accountType
	}
	if update.CreditLimit.IsNull() {
		acc.CreditLimit = nil
	} else if limit, ok := update.CreditLimit.Get(); ok {
		acc.CreditLimit = &limit
	}
	st.accounts[id] = acc
	return &acc, nil
}

func (a *accounts) UpdateBalance(_ context.Context, id uuid.UUID, balance money.Money) error {
	st := a.state()
	acc, ok := st.accounts[id]
	if !ok {
		return record.ErrNotFound
	}
	if !balance.InRange() {
		return record.ErrOutOfRange
	}
	acc.CurrentBalance = balance
	st.accounts[id] = acc
	return nil
}

func (a *accounts) Delete(_ context.Context, id uuid.UUID) error {
	st := a.state()
	if _, ok := st.accounts[id]; !ok {
		return record.ErrNotFound
	}
	for _, txn := range st.transactions {
		if txn.AccountID == id {
			return record.ErrReferenced
		}
	}
	for _, tr := range st.transfers {
		if tr.SourceAccountID == id || tr.DestinationAccountID == id {
			return record.ErrReferenced
		}
	}
	delete(st.accounts, id)
	return nil
}

func compareUUID(x, y uuid.UUID) int {
	return slices.Compare(x.Bytes(), y.Bytes())
}
