package account

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

	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

type Writer struct {
	exec bob.Executor
	Reader
}

var _ IWriter = (*Writer)(nil)

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		exec: exec,
		Reader: Reader{
			exec: exec,
		},
	}
}

func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	return findAccount(ctx, w.exec, id, true)
}

func (w *Writer) Insert(ctx context.Context, create *AccountCreate) (*Account, error) {
	query := psql.Insert(
		im.Into(tableName, "owner_id", "name", "type", "initial_balance", "current_balance", "credit_limit"),
		im.Values(
			psql.Arg(create.OwnerID),
			psql.Arg(create.Name),
			psql.Arg(string(create.Type)),
			psql.Arg(create.InitialBalance.Decimal()),
			psql.Arg(create.InitialBalance.Decimal()),
			psql.Arg(nullableDecimal(create.CreditLimit)),
		),
		im.Returning(columns...),
	)

	row, err := bob.One(ctx, w.exec, query, scan.StructMapper[accountRow]())
	if err != nil {
		return nil, record.Translate(err)
	}
	return rowToAccount(&row), nil
}

func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *AccountUpdate) (*Account, error) {
	var queryMods []bob.Mod[*dialect.UpdateQuery]
	if name, ok := update.Name.Get(); ok {
		queryMods = append(queryMods, um.SetCol("name").ToArg(name))
	}
	if accountType, ok := update.Type.Get(); ok {
		queryMods = append(queryMods, um.SetCol("type").ToArg(string(accountType)))
	}
	if update.CreditLimit.IsNull() {
		queryMods = append(queryMods, um.SetCol("credit_limit").ToArg(nil))
	} else if limit, ok := update.CreditLimit.Get(); ok {
		queryMods = append(queryMods, um.SetCol("credit_limit").ToArg(limit.Decimal()))
	}
	if len(queryMods) == 0 {
		return w.FindByID(ctx, id)
	}

	queryMods = append(queryMods,
		um.Table(tableName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)
	row, err := bob.One(ctx, w.exec, psql.Update(queryMods...), scan.StructMapper[accountRow]())
	if err != nil {
		return nil, record.Translate(err)
	}
	return rowToAccount(&row), nil
}

func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance money.Money) error {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("current_balance").ToArg(balance.Decimal()),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, w.exec, query)
	if err != nil {
		return record.Translate(err)
	}
	return record.RequireAffected(result)
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
