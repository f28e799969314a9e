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

type UpdateCategory struct {
	OwnerID    uuid.UUID
	CategoryID uuid.UUID
	Update     category.CategoryUpdate

	Result *category.Category
}

func (u *UpdateCategory) ActionName() string { return "category.update" }

func (u *UpdateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	cat, err := ownedCategory(ctx, writer, u.OwnerID, u.CategoryID)
	if err != nil {
		return err
	}

	name := u.Update.Name.GetOr(cat.Name)
	kind := u.Update.Kind.GetOr(cat.Kind)
	if u.Update.Name.IsValue() {
		if err := validateName("name", name); err != nil {
			return err
		}
	}
	if !kind.Valid() {
		return apperr.BadRequest("unknown category kind %q", kind)
	}

	if name != cat.Name || kind != cat.Kind {
		if err := ensureCategoryNameFree(ctx, writer, u.OwnerID, name, kind, cat.ID); err != nil {
			return err
		}
	}

	updated, err := writer.Category.Update(ctx, u.CategoryID, &u.Update)
	if errors.Is(err, record.ErrDuplicate) {
		return duplicateCategory(name, kind)
	}
	if err != nil {
		return err
	}

	u.Result = updated
	return nil
}
