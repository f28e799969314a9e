package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
	"github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

// Tx finishes a unit of work.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer is one unit of work. Every balance change goes through Ledger so the
// applied deltas can be reported once the work commits.
type Writer struct {
	tx          Tx
	Account     account.IWriter
	Category    category.IWriter
	Transaction transaction.IWriter
	Transfer    transfer.IWriter
	Ledger      *ledger.Ledger
}

func NewWriter(
	tx Tx,
	accounts account.IWriter,
	categories category.IWriter,
	transactions transaction.IWriter,
	transfers transfer.IWriter,
) *Writer {
	return &Writer{
		tx:          tx,
		Account:     accounts,
		Category:    categories,
		Transaction: transactions,
		Transfer:    transfers,
		Ledger:      ledger.New(accounts),
	}
}

func NewPostgresWriter(tx bob.Tx) *Writer {
	return NewWriter(
		tx,
		account.NewWriter(tx),
		category.NewWriter(tx),
		transaction.NewWriter(tx),
		transfer.NewWriter(tx),
	)
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
