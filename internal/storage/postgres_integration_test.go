//go:build integration

package storage_test

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/operator"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

func startPostgres(t *testing.T) *storage.Storage {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("ledger"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	result, err := storage.RunMigrations(dsn)
	require.NoError(t, err)
	assert.Equal(t, uint(1), result.PostVersion)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	s := storage.NewFromDB(db)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Ping(ctx))
	return s
}

func TestPostgresRoundTrip(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	w, err := s.Write(ctx)
	require.NoError(t, err)
	acc, err := w.Account.Insert(ctx, &account.AccountCreate{
		OwnerID:        owner,
		Name:           "Checking",
		Type:           account.AccountTypeBank,
		InitialBalance: money.MustParse("100.25"),
	})
	require.NoError(t, err)
	cat, err := w.Category.Insert(ctx, &category.CategoryCreate{OwnerID: owner, Name: "Food", Kind: category.KindExpense})
	require.NoError(t, err)
	tx, err := w.Transaction.Insert(ctx, &transaction.TransactionCreate{
		OwnerID:    owner,
		AccountID:  acc.ID,
		CategoryID: &cat.ID,
		Amount:     money.MustParse("10.05"),
		Kind:       category.KindExpense,
		Date:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = w.Ledger.ApplyDelta(ctx, acc.ID, money.MustParse("-10.05"))
	require.NoError(t, err)
	require.NoError(t, w.Commit(ctx))

	got, err := s.Reader.Accounts.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "90.20", got.CurrentBalance.String())
	assert.Equal(t, "100.25", got.InitialBalance.String())

	// Duplicate category names per owner and kind are rejected.
	w, err = s.Write(ctx)
	require.NoError(t, err)
	_, err = w.Category.Insert(ctx, &category.CategoryCreate{OwnerID: owner, Name: "Food", Kind: category.KindExpense})
	assert.ErrorIs(t, err, record.ErrDuplicate)
	require.NoError(t, w.Rollback(ctx))

	// An account with transactions cannot be removed.
	w, err = s.Write(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, w.Account.Delete(ctx, acc.ID), record.ErrReferenced)
	require.NoError(t, w.Rollback(ctx))

	// Deleting the category detaches it from the transaction.
	w, err = s.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Category.Delete(ctx, cat.ID))
	require.NoError(t, w.Commit(ctx))

	stored, err := s.Reader.Transactions.FindByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CategoryID)
	assert.Equal(t, "2025-03-01", stored.Date.Format("2006-01-02"))

	_, err = s.Reader.Accounts.FindByID(ctx, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, record.ErrNotFound)
}

// Concurrent transfers out of one account never overdraw it.
func TestPostgresConcurrentTransfers(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	log := logrus.New()
	log.Out = io.Discard
	delegator := operator.NewOperatorDelegator(s, 8, nil, log)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	source := &actions.CreateAccount{OwnerID: owner, Name: "Source", Type: account.AccountTypeBank, InitialBalance: money.MustParse("50.00")}
	require.NoError(t, delegator.Process(ctx, source))
	dest := &actions.CreateAccount{OwnerID: owner, Name: "Dest", Type: account.AccountTypeVault}
	require.NoError(t, delegator.Process(ctx, dest))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := delegator.Process(ctx, &actions.CreateTransfer{
				OwnerID:              owner,
				SourceAccountID:      &source.Result.ID,
				DestinationAccountID: dest.Result.ID,
				Amount:               money.MustParse("5.00"),
				Date:                 time.Now(),
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	src, err := s.Reader.Accounts.FindByID(ctx, source.Result.ID)
	require.NoError(t, err)
	assert.True(t, src.CurrentBalance.IsZero())
	dst, err := s.Reader.Accounts.FindByID(ctx, dest.Result.ID)
	require.NoError(t, err)
	assert.Equal(t, "50.00", dst.CurrentBalance.String())
}
