package memory

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

func TestStore_CommitIsVisibleToReaders(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	owner := uuid.Must(uuid.NewV4())

	w, err := s.Write(ctx)
	require.NoError(t, err)
	acc, err := w.Account.Insert(ctx, &account.AccountCreate{
		OwnerID:        owner,
		Name:           "Wallet",
		Type:           account.AccountTypeWallet,
		InitialBalance: money.MustParse("10.00"),
	})
	require.NoError(t, err)

	_, err = s.Reader.Accounts.FindByID(ctx, acc.ID)
	assert.ErrorIs(t, err, record.ErrNotFound, "uncommitted insert must not be visible")

	require.NoError(t, w.Commit(ctx))

	got, err := s.Reader.Accounts.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", got.CurrentBalance.String())
	assert.Error(t, w.Commit(ctx))
}

func TestStore_RollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	w, err := s.Write(ctx)
	require.NoError(t, err)
	acc, err := w.Account.Insert(ctx, &account.AccountCreate{
		OwnerID: uuid.Must(uuid.NewV4()), Name: "Bank", Type: account.AccountTypeBank,
	})
	require.NoError(t, err)
	require.NoError(t, w.Rollback(ctx))

	_, err = s.Reader.Accounts.FindByID(ctx, acc.ID)
	assert.ErrorIs(t, err, record.ErrNotFound)

	// the next unit of work can start once the previous one finished
	w2, err := s.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, w2.Rollback(ctx))
}

func TestStore_WriteWaitsForOpenUnitOfWork(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	w, err := s.Write(ctx)
	require.NoError(t, err)
	defer w.Rollback(ctx)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = s.Write(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStore_CategoryUniquenessAndDetach(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	owner := uuid.Must(uuid.NewV4())

	w, err := s.Write(ctx)
	require.NoError(t, err)
	defer w.Rollback(ctx)

	food, err := w.Category.Insert(ctx, &category.CategoryCreate{OwnerID: owner, Name: "Food", Kind: category.KindExpense})
	require.NoError(t, err)
	_, err = w.Category.Insert(ctx, &category.CategoryCreate{OwnerID: owner, Name: "Food", Kind: category.KindExpense})
	assert.ErrorIs(t, err, record.ErrDuplicate)
	_, err = w.Category.Insert(ctx, &category.CategoryCreate{OwnerID: owner, Name: "Food", Kind: category.KindIncome})
	assert.NoError(t, err)

	acc, err := w.Account.Insert(ctx, &account.AccountCreate{OwnerID: owner, Name: "Wallet", Type: account.AccountTypeWallet})
	require.NoError(t, err)
	txn, err := w.Transaction.Insert(ctx, &transaction.TransactionCreate{
		OwnerID: owner, AccountID: acc.ID, CategoryID: &food.ID,
		Amount: money.MustParse("5.00"), Kind: category.KindExpense, Date: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, w.Category.Delete(ctx, food.ID))
	got, err := w.Transaction.FindByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)

	assert.ErrorIs(t, w.Account.Delete(ctx, acc.ID), record.ErrReferenced)
}

func TestStore_TransactionOrderingAndPaging(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	owner := uuid.Must(uuid.NewV4())

	w, err := s.Write(ctx)
	require.NoError(t, err)
	acc, err := w.Account.Insert(ctx, &account.AccountCreate{OwnerID: owner, Name: "Wallet", Type: account.AccountTypeWallet})
	require.NoError(t, err)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for _, d := range []time.Time{day, day.AddDate(0, 0, 2), day, day.AddDate(0, 0, 1)} {
		txn, err := w.Transaction.Insert(ctx, &transaction.TransactionCreate{
			OwnerID: owner, AccountID: acc.ID, Amount: money.MustParse("1.00"), Kind: category.KindIncome, Date: d,
		})
		require.NoError(t, err)
		ids = append(ids, txn.ID)
	}
	require.NoError(t, w.Commit(ctx))

	all, err := s.Reader.Transactions.List(ctx, &transaction.TransactionFilter{OwnerID: &owner})
	require.NoError(t, err)
	require.Len(t, all, 4)
	// newest date first, same-day ties by latest creation
	assert.Equal(t, []uuid.UUID{ids[1], ids[3], ids[2], ids[0]}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID, all[3].ID})

	paged, err := s.Reader.Transactions.List(ctx, &transaction.TransactionFilter{OwnerID: &owner, Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 3)
	assert.Equal(t, ids[3], paged[0].ID)

	past, err := s.Reader.Transactions.List(ctx, &transaction.TransactionFilter{OwnerID: &owner, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestStore_AccountUpdateClearsCreditLimit(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	limit := money.MustParse("100.00")

	w, err := s.Write(ctx)
	require.NoError(t, err)
	defer w.Rollback(ctx)

	acc, err := w.Account.Insert(ctx, &account.AccountCreate{
		OwnerID: uuid.Must(uuid.NewV4()), Name: "Bank", Type: account.AccountTypeBank, CreditLimit: &limit,
	})
	require.NoError(t, err)

	updated, err := w.Account.Update(ctx, acc.ID, &account.AccountUpdate{CreditLimit: omitnull.FromPtr[money.Money](nil)})
	require.NoError(t, err)
	assert.Nil(t, updated.CreditLimit)
}
