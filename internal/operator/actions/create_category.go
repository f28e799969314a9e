package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

type CreateCategory struct {
	OwnerID uuid.UUID
	Name    string
	Kind    category.Kind

	Result *category.Category
}

func (c *CreateCategory) ActionName() string { return "category.create" }

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateName("name", c.Name); err != nil {
		return err
	}
	if !c.Kind.Valid() {
		return apperr.BadRequest("unknown category kind %q", c.Kind)
	}
	if err := ensureCategoryNameFree(ctx, writer, c.OwnerID, c.Name, c.Kind, uuid.Nil); err != nil {
		return err
	}

	cat, err := writer.Category.Insert(ctx, &category.CategoryCreate{
		OwnerID: c.OwnerID,
		Name:    c.Name,
		Kind:    c.Kind,
	})
	if errors.Is(err, record.ErrDuplicate) {
		return duplicateCategory(c.Name, c.Kind)
	}
	if err != nil {
		return err
	}

	c.Result = cat
	return nil
}

// ensureCategoryNameFree fails when the owner already has another category
// with this name and kind. except is the category being edited, if any.
func ensureCategoryNameFree(ctx context.Context, writer *storage.Writer, ownerID uuid.UUID, name string, kind category.Kind, except uuid.UUID) error {
	existing, err := writer.Category.FindByName(ctx, ownerID, name, kind)
	if errors.Is(err, record.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != except {
		return duplicateCategory(name, kind)
	}
	return nil
}

func duplicateCategory(name string, kind category.Kind) error {
	return apperr.BadRequest("a %s category named %q already exists", kind, name)
}
