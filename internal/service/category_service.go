package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/ownership"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
)

// CategoryService handles category business logic.
type CategoryService struct {
	reader    *storage.Reader
	processor Processor
}

func NewCategoryService(reader *storage.Reader, processor Processor) *CategoryService {
	return &CategoryService{reader: reader, processor: processor}
}

func (s *CategoryService) CreateCategory(ctx context.Context, p auth.Principal, create category.CategoryCreate) (*category.Category, error) {
	action := &actions.CreateCategory{OwnerID: p.ID, Name: create.Name, Kind: create.Kind}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, p auth.Principal, id uuid.UUID) (*category.Category, error) {
	return ownership.Resolve[category.Category](ctx, "category", id, p.ID,
		s.reader.Categories.FindByID,
		func(c *category.Category) uuid.UUID { return c.OwnerID },
	)
}

// ListCategories returns p's categories by name, optionally only one kind.
func (s *CategoryService) ListCategories(ctx context.Context, p auth.Principal, kind *category.Kind, cursor *Cursor) ([]*category.Category, *Cursor, error) {
	limit, offset := cursor.bounds()
	rows, err := s.reader.Categories.List(ctx, &category.CategoryFilter{
		OwnerID: &p.ID,
		Kind:    kind,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	rows, more := trim(rows, limit)
	return rows, cursor.next(offset, limit, more), nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, p auth.Principal, id uuid.UUID, update category.CategoryUpdate) (*category.Category, error) {
	action := &actions.UpdateCategory{OwnerID: p.ID, CategoryID: id, Update: update}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// DeleteCategory removes the category. Its transactions stay, uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteCategory{OwnerID: p.ID, CategoryID: id})
}
