package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
	"github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

type Reader struct {
	Accounts     account.IReader
	Categories   category.IReader
	Transactions transaction.IReader
	Transfers    transfer.IReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Categories:   category.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Transfers:    transfer.NewReader(exec),
	}
}
