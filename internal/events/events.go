// Package events announces committed balance changes to other systems.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/money"
)

// BalanceChanged is published once per applied delta after the unit of work
// that applied it commits.
type BalanceChanged struct {
	AccountID  uuid.UUID   `json:"account_id"`
	OwnerID    uuid.UUID   `json:"owner_id"`
	Delta      money.Money `json:"delta"`
	Balance    money.Money `json:"balance"`
	Cause      string      `json:"cause"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func (e *BalanceChanged) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromEntries builds one event per ledger entry. cause names the operation
// that produced them.
func FromEntries(cause string, entries []ledger.Entry, at time.Time) []BalanceChanged {
	out := make([]BalanceChanged, 0, len(entries))
	for _, e := range entries {
		out = append(out, BalanceChanged{
			AccountID:  e.AccountID,
			OwnerID:    e.OwnerID,
			Delta:      e.Delta,
			Balance:    e.Balance,
			Cause:      cause,
			OccurredAt: at,
		})
	}
	return out
}

type Publisher interface {
	Publish(ctx context.Context, events []BalanceChanged) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, []BalanceChanged) error { return nil }

func (Noop) Close() error { return nil }
