package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func newTestTransactionService(t *testing.T) (*TransactionService, *mockTransactionReader, *mockProcessor) {
	t.Helper()
	reader := &mockTransactionReader{}
	processor := &mockProcessor{}
	t.Cleanup(func() {
		reader.AssertExpectations(t)
		processor.AssertExpectations(t)
	})
	svc := NewTransactionService(&storage.Reader{Transactions: reader}, processor)
	svc.now = func() time.Time { return fixedNow }
	return svc, reader, processor
}

func userPrincipal() auth.Principal {
	return auth.Principal{ID: uuid.Must(uuid.NewV4()), Role: auth.RoleUser}
}

func makeTransactions(n int, owner uuid.UUID) []*transaction.Transaction {
	rows := make([]*transaction.Transaction, n)
	for i := range rows {
		rows[i] = &transaction.Transaction{
			ID:        uuid.Must(uuid.NewV4()),
			OwnerID:   owner,
			AccountID: uuid.Must(uuid.NewV4()),
			Amount:    money.MustParse("5.00"),
			Kind:      category.KindExpense,
			Date:      fixedNow.AddDate(0, 0, -i),
			CreatedAt: fixedNow.Add(-time.Hour),
		}
	}
	return rows
}

// -- CreateTransaction tests --

func TestCreateTransaction_Success(t *testing.T) {
	svc, _, processor := newTestTransactionService(t)
	p := userPrincipal()
	accountID := uuid.Must(uuid.NewV4())
	created := &transaction.Transaction{ID: uuid.Must(uuid.NewV4()), OwnerID: p.ID, AccountID: accountID}

	processor.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateTransaction) bool {
		return a.OwnerID == p.ID &&
			a.AccountID == accountID &&
			a.Amount.Equal(money.MustParse("42.50")) &&
			a.Kind == category.KindIncome
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateTransaction).Result = created
	}).Return(nil)

	txn, err := svc.CreateTransaction(context.Background(), p, transaction.TransactionCreate{
		OwnerID:   uuid.Must(uuid.NewV4()),
		AccountID: accountID,
		Amount:    money.MustParse("42.50"),
		Kind:      category.KindIncome,
		Date:      fixedNow,
	})

	require.NoError(t, err)
	assert.Equal(t, created, txn)
}

func TestCreateTransaction_ProcessError(t *testing.T) {
	svc, _, processor := newTestTransactionService(t)

	processor.On("Process", mock.Anything, mock.Anything).Return(apperr.NotFound("account not found"))

	txn, err := svc.CreateTransaction(context.Background(), userPrincipal(), transaction.TransactionCreate{
		AccountID: uuid.Must(uuid.NewV4()),
		Amount:    money.MustParse("1.00"),
		Kind:      category.KindExpense,
	})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Nil(t, txn)
}

// -- GetTransaction tests --

func TestGetTransaction_Guarded(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)
	p := userPrincipal()
	own := makeTransactions(1, p.ID)[0]
	foreign := makeTransactions(1, uuid.Must(uuid.NewV4()))[0]
	missing := uuid.Must(uuid.NewV4())

	reader.On("FindByID", mock.Anything, own.ID).Return(own, nil)
	reader.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)
	reader.On("FindByID", mock.Anything, missing).Return(nil, record.ErrNotFound)

	got, err := svc.GetTransaction(context.Background(), p, own.ID)
	require.NoError(t, err)
	assert.Equal(t, own, got)

	_, err = svc.GetTransaction(context.Background(), p, foreign.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.GetTransaction(context.Background(), p, missing)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

// -- ListTransactions tests --

func TestListTransactions_NoResults(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)

	reader.On("List", mock.Anything, mock.Anything).Return([]*transaction.Transaction{}, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), userPrincipal(), nil)

	assert.NoError(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_NilCursorReturnsAll(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)
	p := userPrincipal()
	rows := makeTransactions(defaultLimit+5, p.ID)

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return *f.OwnerID == p.ID && f.Limit == 0 && f.Offset == 0 && f.MaxCreationTime == nil
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), p, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, defaultLimit+5)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_FirstPagePinsCreationTime(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)
	p := userPrincipal()
	rows := makeTransactions(defaultLimit+1, p.ID)

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == defaultLimit && f.Offset == 0 && f.MaxCreationTime.Equal(fixedNow)
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), p, &TimelineCursor{})

	assert.NoError(t, err)
	assert.Len(t, txs, defaultLimit, "truncated to default limit")
	require.NotNil(t, nextCursor)
	assert.Equal(t, defaultLimit, nextCursor.Position)
	assert.Equal(t, defaultLimit, nextCursor.Limit)
	assert.Equal(t, fixedNow, nextCursor.MaxCreationTime)
}

func TestListTransactions_WithCursor(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)
	p := userPrincipal()
	cursorTime := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	rows := makeTransactions(3, p.ID) // limit=2, returns 3 → has next page

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == 2 &&
			f.Offset == 20 &&
			f.MaxCreationTime != nil &&
			f.MaxCreationTime.Equal(cursorTime)
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), p, &TimelineCursor{
		Position:        20,
		Limit:           2,
		MaxCreationTime: cursorTime,
	})

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	require.NotNil(t, nextCursor)
	assert.Equal(t, 22, nextCursor.Position)
	assert.Equal(t, 2, nextCursor.Limit)
	assert.Equal(t, cursorTime, nextCursor.MaxCreationTime, "echoed from cursor")
}

func TestListTransactions_LastPage(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)
	p := userPrincipal()

	reader.On("List", mock.Anything, mock.Anything).Return(makeTransactions(2, p.ID), nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), p, &TimelineCursor{Position: 4, Limit: 2, MaxCreationTime: fixedNow})

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_StorageError(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)

	reader.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("database unavailable"))

	txs, nextCursor, err := svc.ListTransactions(context.Background(), userPrincipal(), nil)

	assert.EqualError(t, err, "database unavailable")
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

// -- Update/Delete tests --

func TestDeleteTransaction_PassesPrincipal(t *testing.T) {
	svc, _, processor := newTestTransactionService(t)
	p := userPrincipal()
	id := uuid.Must(uuid.NewV4())

	processor.On("Process", mock.Anything, &actions.DeleteTransaction{OwnerID: p.ID, TransactionID: id}).Return(nil)

	assert.NoError(t, svc.DeleteTransaction(context.Background(), p, id))
}
