// Package memory is a process-local record store with the same semantics as
// the Postgres backend. Units of work are serialized; readers see the last
// committed state.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/semaphore"

	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
	"github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

var errTxDone = errors.New("memory: unit of work already finished")

type state struct {
	accounts     map[uuid.UUID]account.Account
	categories   map[uuid.UUID]category.Category
	transactions map[uuid.UUID]transaction.Transaction
	transfers    map[uuid.UUID]transfer.Transfer
}

func newState() *state {
	return &state{
		accounts:     map[uuid.UUID]account.Account{},
		categories:   map[uuid.UUID]category.Category{},
		transactions: map[uuid.UUID]transaction.Transaction{},
		transfers:    map[uuid.UUID]transfer.Transfer{},
	}
}

func (s *state) clone() *state {
	c := &state{
		accounts:     make(map[uuid.UUID]account.Account, len(s.accounts)),
		categories:   make(map[uuid.UUID]category.Category, len(s.categories)),
		transactions: make(map[uuid.UUID]transaction.Transaction, len(s.transactions)),
		transfers:    make(map[uuid.UUID]transfer.Transfer, len(s.transfers)),
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	return c
}

// Store holds the committed state. Committed states are never mutated; a unit
// of work edits a private copy and swaps it in on commit.
type Store struct {
	sem       *semaphore.Weighted
	mu        sync.RWMutex
	committed *state
	clock     clock
}

func NewStore() *Store {
	return &Store{
		sem:       semaphore.NewWeighted(1),
		committed: newState(),
	}
}

// NewStorage returns a storage.Storage backed by a fresh in-memory store.
func NewStorage() *storage.Storage {
	return NewStore().Storage()
}

func (s *Store) Storage() *storage.Storage {
	reader := &storage.Reader{
		Accounts:     &accounts{state: s.snapshot},
		Categories:   &categories{state: s.snapshot},
		Transactions: &transactions{state: s.snapshot},
		Transfers:    &transfers{state: s.snapshot},
	}
	return storage.New(reader, s.begin, nil)
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}

func (s *Store) begin(ctx context.Context) (*storage.Writer, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	uow := &unitOfWork{store: s, work: s.snapshot().clone()}
	get := func() *state { return uow.work }
	return storage.NewWriter(
		uow,
		&accounts{state: get, clock: &s.clock},
		&categories{state: get, clock: &s.clock},
		&transactions{state: get, clock: &s.clock},
		&transfers{state: get, clock: &s.clock},
	), nil
}

type unitOfWork struct {
	store *Store
	work  *state
	done  bool
}

func (u *unitOfWork) Commit(context.Context) error {
	if u.done {
		return errTxDone
	}
	u.done = true
	u.store.mu.Lock()
	u.store.committed = u.work
	u.store.mu.Unlock()
	u.store.sem.Release(1)
	return nil
}

func (u *unitOfWork) Rollback(context.Context) error {
	if u.done {
		return errTxDone
	}
	u.done = true
	u.work = nil
	u.store.sem.Release(1)
	return nil
}

// clock hands out strictly increasing creation times so ordering by
// created_at is total, as it is with clock_timestamp() in Postgres.
type clock struct {
	mu   sync.Mutex
	last time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := time.Now().UTC()
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// page applies offset and the one-extra-row limit used by the SQL readers.
func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit+1 {
		items = items[:limit+1]
	}
	return items
}
