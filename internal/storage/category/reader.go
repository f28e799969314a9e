package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

type Reader struct {
	exec bob.Executor
}

var _ IReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return r.findOne(ctx, sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
}

func (r *Reader) FindByName(ctx context.Context, ownerID uuid.UUID, name string, kind Kind) (*Category, error) {
	return r.findOne(ctx,
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
		sm.Where(psql.Quote("kind").EQ(psql.Arg(string(kind)))),
	)
}

func (r *Reader) List(ctx context.Context, filter *CategoryFilter) ([]*Category, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}
	if filter != nil {
		if filter.OwnerID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("owner_id").EQ(psql.Arg(*filter.OwnerID))))
		}
		if filter.Kind != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("kind").EQ(psql.Arg(string(*filter.Kind)))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[categoryRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Category, len(rows))
	for i := range rows {
		result[i] = rowToCategory(&rows[i])
	}
	return result, nil
}

func (r *Reader) findOne(ctx context.Context, where ...bob.Mod[*dialect.SelectQuery]) (*Category, error) {
	queryMods := append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}, where...)

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[categoryRow]())
	if err != nil {
		return nil, record.Translate(err)
	}
	return rowToCategory(&row), nil
}
