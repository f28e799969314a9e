package transfer

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

func (w *Writer) Insert(ctx context.Context, create *TransferCreate) (*Transfer, error) {
	query := psql.Insert(
		im.Into(tableName, "owner_id", "source_account_id", "destination_account_id", "amount", "date"),
		im.Values(
			psql.Arg(create.OwnerID),
			psql.Arg(create.SourceAccountID),
			psql.Arg(create.DestinationAccountID),
			psql.Arg(create.Amount.Decimal()),
			psql.Arg(create.Date),
		),
		im.Returning(columns...),
	)
	row, err := bob.One(ctx, w.exec, query, scan.StructMapper[transferRow]())
	if err != nil {
		return nil, record.Translate(err)
	}
	return rowToTransfer(&row), nil
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
