package category

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

func (w *Writer) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	query := psql.Insert(
		im.Into(tableName, "owner_id", "name", "kind"),
		im.Values(psql.Arg(create.OwnerID), psql.Arg(create.Name), psql.Arg(string(create.Kind))),
		im.Returning(columns...),
	)
	row, err := bob.One(ctx, w.exec, query, scan.StructMapper[categoryRow]())
	if err != nil {
		return nil, record.Translate(err)
	}
	return rowToCategory(&row), nil
}

func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *CategoryUpdate) (*Category, error) {
	var queryMods []bob.Mod[*dialect.UpdateQuery]
	if name, ok := update.Name.Get(); ok {
		queryMods = append(queryMods, um.SetCol("name").ToArg(name))
	}
	if kind, ok := update.Kind.Get(); ok {
		queryMods = append(queryMods, um.SetCol("kind").ToArg(string(kind)))
	}
	if len(queryMods) == 0 {
		return w.FindByID(ctx, id)
	}

	queryMods = append(queryMods,
		um.Table(tableName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)
	row, err := bob.One(ctx, w.exec, psql.Update(queryMods...), scan.StructMapper[categoryRow]())
	if err != nil {
		return nil, record.Translate(err)
	}
	return rowToCategory(&row), nil
}

// Delete removes the category. Transactions pointing at it are detached by the
// foreign key's ON DELETE SET NULL.
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
