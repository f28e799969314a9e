package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

type categories struct {
	state func() *state
	clock *clock
}

var _ category.IWriter = (*categories)(nil)

func (c *categories) FindByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	cat, ok := c.state().categories[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	return &cat, nil
}

func (c *categories) FindByName(_ context.Context, ownerID uuid.UUID, name string, kind category.Kind) (*category.Category, error) {
	for _, cat := range c.state().categories {
		if cat.OwnerID == ownerID && cat.Name == name && cat.Kind == kind {
			return &cat, nil
		}
	}
	return nil, record.ErrNotFound
}

func (c *categories) List(_ context.Context, filter *category.CategoryFilter) ([]*category.Category, error) {
	var result []*category.Category
	for _, cat := range c.state().categories {
		if filter != nil && filter.OwnerID != nil && cat.OwnerID != *filter.OwnerID {
			continue
		}
		if filter != nil && filter.Kind != nil && cat.Kind != *filter.Kind {
			continue
		}
		result = append(result, &cat)
	}
	slices.SortFunc(result, func(x, y *category.Category) int {
		if n := strings.Compare(x.Name, y.Name); n != 0 {
			return n
		}
		return compareUUID(x.ID, y.ID)
	})
	if filter != nil {
		result = page(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

func (c *categories) Insert(ctx context.Context, create *category.CategoryCreate) (*category.Category, error) {
	if c.taken(create.OwnerID, create.Name, create.Kind, uuid.Nil) {
		return nil, record.ErrDuplicate
	}
	cat := category.Category{
		ID:        newID(),
		OwnerID:   create.OwnerID,
		Name:      create.Name,
		Kind:      create.Kind,
		CreatedAt: c.clock.now(),
	}
	c.state().categories[cat.ID] = cat
	return &cat, nil
}

func (c *categories) Update(_ context.Context, id uuid.UUID, update *category.CategoryUpdate) (*category.Category, error) {
	st := c.state()
	cat, ok := st.categories[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	if name, ok := update.Name.Get(); ok {
		cat.Name = name
	}
	if kind, ok := update.Kind.Get(); ok {
		cat.Kind = kind
	}
	if c.taken(cat.OwnerID, cat.Name, cat.Kind, id) {
		return nil, record.ErrDuplicate
	}
	st.categories[id] = cat
	return &cat, nil
}

// Delete detaches transactions from the category before removing it.
func (c *categories) Delete(_ context.Context, id uuid.UUID) error {
	st := c.state()
	if _, ok := st.categories[id]; !ok {
		return record.ErrNotFound
	}
	for txnID, txn := range st.transactions {
		if txn.CategoryID != nil && *txn.CategoryID == id {
			txn.CategoryID = nil
			st.transactions[txnID] = txn
		}
	}
	delete(st.categories, id)
	return nil
}

func (c *categories) taken(ownerID uuid.UUID, name string, kind category.Kind, except uuid.UUID) bool {
	for id, cat := range c.state().categories {
		if id != except && cat.OwnerID == ownerID && cat.Name == name && cat.Kind == kind {
			return true
		}
	}
	return false
}
