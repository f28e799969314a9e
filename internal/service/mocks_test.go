package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockAccountReader struct {
	mock.Mock
}

func (m *mockAccountReader) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *mockAccountReader) List(ctx context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*account.Account)
	return rows, args.Error(1)
}

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	txn, _ := args.Get(0).(*transaction.Transaction)
	return txn, args.Error(1)
}

func (m *mockTransactionReader) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}
