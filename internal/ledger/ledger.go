// Package ledger keeps each account's current balance in step with the
// records that move money through it.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

// Entry is one applied balance change.
type Entry struct {
	AccountID uuid.UUID
	OwnerID   uuid.UUID
	Delta     money.Money
	Balance   money.Money
}

// Ledger applies signed deltas to account balances within a single unit of work.
// It performs no business validation; callers decide whether a delta is allowed.
type Ledger struct {
	accounts account.IWriter
	entries  []Entry
}

func New(accounts account.IWriter) *Ledger {
	return &Ledger{accounts: accounts}
}

// ApplyDelta adds delta to the account's current balance and returns the updated
// account. The account row stays locked until the unit of work ends.
func (l *Ledger) ApplyDelta(ctx context.Context, accountID uuid.UUID, delta money.Money) (*account.Account, error) {
	acc, err := l.accounts.FindByIDForUpdate(ctx, accountID)
	if errors.Is(err, record.ErrNotFound) {
		return nil, apperr.NotFound("account %s not found", accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", accountID, err)
	}

	balance := acc.CurrentBalance.Add(delta)
	err = l.accounts.UpdateBalance(ctx, accountID, balance)
	if errors.Is(err, record.ErrOutOfRange) {
		return nil, apperr.BadRequest("balance of account %s would exceed %s", accountID, money.Max)
	}
	if err != nil {
		return nil, fmt.Errorf("update balance of account %s: %w", accountID, err)
	}
	acc.CurrentBalance = balance

	l.entries = append(l.entries, Entry{
		AccountID: accountID,
		OwnerID:   acc.OwnerID,
		Delta:     delta,
		Balance:   balance,
	})
	return acc, nil
}

// Entries returns the deltas applied so far, in order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
