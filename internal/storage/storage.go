package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-ledger/internal/config"
)

// BeginFunc opens a unit of work against a backend.
type BeginFunc func(ctx context.Context) (*Writer, error)

// Storage is the record store. Reader serves reads outside any unit of work;
// Write opens a unit of work that must end in Commit or Rollback.
type Storage struct {
	Reader *Reader
	begin  BeginFunc
	close  func() error
	ping   func(ctx context.Context) error
}

// New assembles a Storage from backend parts. Backends other than Postgres
// use it to plug in.
func New(reader *Reader, begin BeginFunc, closeFn func() error) *Storage {
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return &Storage{
		Reader: reader,
		begin:  begin,
		close:  closeFn,
	}
}

// NewStorage connects to Postgres with the configured credentials.
func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewFromDB(db), nil
}

// NewFromDB wraps an already opened Postgres handle.
func NewFromDB(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	s := New(
		NewReader(bobDB),
		func(ctx context.Context) (*Writer, error) {
			tx, err := bobDB.BeginTx(ctx, nil)
			if err != nil {
				return nil, fmt.Errorf("begin transaction: %w", err)
			}
			return NewPostgresWriter(tx), nil
		},
		db.Close,
	)
	s.ping = db.PingContext
	return s
}

func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.begin(ctx)
}

// Ping reports whether the backend is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Storage) Close() error {
	return s.close()
}
