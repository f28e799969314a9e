package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/ownership"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

// AccountService handles account business logic.
type AccountService struct {
	reader    *storage.Reader
	processor Processor
}

// NewAccountService creates a new AccountService.
func NewAccountService(reader *storage.Reader, processor Processor) *AccountService {
	return &AccountService{reader: reader, processor: processor}
}

// CreateAccount creates an account owned by p. The owner on create is ignored.
func (s *AccountService) CreateAccount(ctx context.Context, p auth.Principal, create account.AccountCreate) (*account.Account, error) {
	action := &actions.CreateAccount{
		OwnerID:        p.ID,
		Name:           create.Name,
		Type:           create.Type,
		InitialBalance: create.InitialBalance,
		CreditLimit:    create.CreditLimit,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// GetAccount retrieves one of p's accounts by ID.
func (s *AccountService) GetAccount(ctx context.Context, p auth.Principal, id uuid.UUID) (*account.Account, error) {
	return ownership.Resolve[account.Account](ctx, "account", id, p.ID,
		s.reader.Accounts.FindByID,
		func(a *account.Account) uuid.UUID { return a.OwnerID },
	)
}

// ListAccounts returns p's accounts, oldest first. A nil cursor returns all of them.
func (s *AccountService) ListAccounts(ctx context.Context, p auth.Principal, cursor *Cursor) ([]*account.Account, *Cursor, error) {
	return listAccounts(ctx, s.reader.Accounts, &p.ID, cursor)
}

func (s *AccountService) UpdateAccount(ctx context.Context, p auth.Principal, id uuid.UUID, update account.AccountUpdate) (*account.Account, error) {
	action := &actions.UpdateAccount{OwnerID: p.ID, AccountID: id, Update: update}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteAccount{OwnerID: p.ID, AccountID: id})
}

func listAccounts(ctx context.Context, reader account.IReader, ownerID *uuid.UUID, cursor *Cursor) ([]*account.Account, *Cursor, error) {
	limit, offset := cursor.bounds()
	rows, err := reader.List(ctx, &account.AccountFilter{
		OwnerID: ownerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	rows, more := trim(rows, limit)
	return rows, cursor.next(offset, limit, more), nil
}
