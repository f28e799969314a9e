package operator

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/events"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BalanceChanged
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, evs []events.BalanceChanged) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evs...)
	return r.err
}

func (r *recordingPublisher) Close() error { return nil }

func (r *recordingPublisher) published() []events.BalanceChanged {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.BalanceChanged(nil), r.events...)
}

type panickingAction struct{}

func (panickingAction) ActionName() string { return "test.panic" }

func (panickingAction) Perform(context.Context, *storage.Writer) error { panic("boom") }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func startDelegator(t *testing.T, s *storage.Storage, pub events.Publisher) *OperatorDelegator {
	t.Helper()
	d := NewOperatorDelegator(s, 2, pub, quietLogger())
	d.Start()
	t.Cleanup(d.Stop)
	return d
}

func TestOperatorDelegator_CommitsAndPublishes(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorage()
	pub := &recordingPublisher{}
	d := startDelegator(t, s, pub)
	owner := uuid.Must(uuid.NewV4())

	create := &actions.CreateAccount{
		OwnerID: owner, Name: "Wallet", Type: account.AccountTypeWallet, InitialBalance: money.MustParse("10.00"),
	}
	require.NoError(t, d.Process(ctx, create))
	assert.Empty(t, pub.published(), "account creation moves no balance")

	txn := &actions.CreateTransaction{
		OwnerID: owner, AccountID: create.Result.ID, Amount: money.MustParse("2.50"), Kind: category.KindExpense,
	}
	require.NoError(t, d.Process(ctx, txn))

	got := pub.published()
	require.Len(t, got, 1)
	assert.Equal(t, create.Result.ID, got[0].AccountID)
	assert.Equal(t, "-2.50", got[0].Delta.String())
	assert.Equal(t, "7.50", got[0].Balance.String())
	assert.Equal(t, "transaction.create", got[0].Cause)

	acc, err := s.Reader.Accounts.FindByID(ctx, create.Result.ID)
	require.NoError(t, err)
	assert.Equal(t, "7.50", acc.CurrentBalance.String())
}

func TestOperatorDelegator_FailedActionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorage()
	pub := &recordingPublisher{}
	d := startDelegator(t, s, pub)
	owner := uuid.Must(uuid.NewV4())

	create := &actions.CreateAccount{OwnerID: owner, Name: "Wallet", Type: account.AccountTypeWallet}
	require.NoError(t, d.Process(ctx, create))

	err := d.Process(ctx, &actions.CreateTransfer{
		OwnerID: owner, DestinationAccountID: create.Result.ID, Amount: money.MustParse("1.00"),
	})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.Empty(t, pub.published())

	err = d.Process(ctx, panickingAction{})
	assert.ErrorContains(t, err, "panicked")

	// the store is usable after a panic
	require.NoError(t, d.Process(ctx, &actions.CreateAccount{OwnerID: owner, Name: "Second", Type: account.AccountTypeBank}))
}

func TestOperatorDelegator_PublishFailureDoesNotFailAction(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorage()
	pub := &recordingPublisher{err: errors.New("broker down")}
	d := startDelegator(t, s, pub)
	owner := uuid.Must(uuid.NewV4())

	create := &actions.CreateAccount{OwnerID: owner, Name: "Wallet", Type: account.AccountTypeWallet}
	require.NoError(t, d.Process(ctx, create))
	require.NoError(t, d.Process(ctx, &actions.CreateTransaction{
		OwnerID: owner, AccountID: create.Result.ID, Amount: money.MustParse("1.00"), Kind: category.KindIncome,
	}))
}

func TestOperatorDelegator_ConcurrentTransactionsSerialize(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorage()
	d := startDelegator(t, s, nil)
	owner := uuid.Must(uuid.NewV4())

	create := &actions.CreateAccount{OwnerID: owner, Name: "Wallet", Type: account.AccountTypeWallet}
	require.NoError(t, d.Process(ctx, create))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, d.Process(ctx, &actions.CreateTransaction{
				OwnerID: owner, AccountID: create.Result.ID, Amount: money.MustParse("0.01"), Kind: category.KindIncome,
			}))
		}()
	}
	wg.Wait()

	acc, err := s.Reader.Accounts.FindByID(ctx, create.Result.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.50", acc.CurrentBalance.String())
}

func TestOperatorDelegator_StoppedAndCancelled(t *testing.T) {
	s := memory.NewStorage()
	d := NewOperatorDelegator(s, 1, nil, quietLogger())
	d.Start()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Process(cancelled, &actions.CreateAccount{OwnerID: uuid.Must(uuid.NewV4()), Name: "Wallet", Type: account.AccountTypeWallet})
	assert.ErrorIs(t, err, context.Canceled)

	d.Stop()
	d.Stop()
	err = d.Process(context.Background(), &actions.CreateAccount{})
	assert.ErrorIs(t, err, ErrStopped)
}
