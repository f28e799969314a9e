package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

type Writer struct {
	exec bob.Executor
	Reader
}

var _ IWriter = (*Writer)(nil)

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		exec:   exec,
		Reader: Reader{exec: exec},
	}
}

func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	query := psql.Insert(
		im.Into(tableName, "owner_id", "account_id", "category_id", "description", "amount", "kind", "date"),
		im.Values(
			psql.Arg(create.OwnerID),
			psql.Arg(create.AccountID),
			psql.Arg(nullableUUID(create.CategoryID)),
			psql.Arg(create.Description),
			psql.Arg(create.Amount.Decimal()),
			psql.Arg(string(create.Kind)),
			psql.Arg(create.Date),
		),
		im.Returning(columns...),
	)
	row, err := bob.One(ctx, w.exec, query, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, record.Translate(err)
	}
	return rowToTransaction(&row), nil
}

func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) (*Transaction, error) {
	var queryMods []bob.Mod[*dialect.UpdateQuery]
	if update.Description.IsNull() {
		queryMods = append(queryMods, um.SetCol("description").ToArg(nil))
	} else if description, ok := update.Description.Get(); ok {
		queryMods = append(queryMods, um.SetCol("description").ToArg(description))
	}
	if date, ok := update.Date.Get(); ok {
		queryMods = append(queryMods, um.SetCol("date").ToArg(date))
	}
	if accountID, ok := update.AccountID.Get(); ok {
		queryMods = append(queryMods, um.SetCol("account_id").ToArg(accountID))
	}
	if update.CategoryID.IsNull() {
		queryMods = append(queryMods, um.SetCol("category_id").ToArg(nil))
	} else if categoryID, ok := update.CategoryID.Get(); ok {
		queryMods = append(queryMods, um.SetCol("category_id").ToArg(categoryID))
	}
	if len(queryMods) == 0 {
		return w.FindByID(ctx, id)
	}

	queryMods = append(queryMods,
		um.Table(tableName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)
	row, err := bob.One(ctx, w.exec, psql.Update(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, record.Translate(err)
	}
	return rowToTransaction(&row), nil
}

func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, w.exec, query)
	if err != nil {
		return record.Translate(err)
	}
	return record.RequireAffected(result)
}
