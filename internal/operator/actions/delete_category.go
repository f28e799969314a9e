package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

// DeleteCategory removes a category. Its transactions survive uncategorized.
type DeleteCategory struct {
	OwnerID    uuid.UUID
	CategoryID uuid.UUID
}

func (d *DeleteCategory) ActionName() string { return "category.delete" }

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := ownedCategory(ctx, writer, d.OwnerID, d.CategoryID); err != nil {
		return err
	}
	return writer.Category.Delete(ctx, d.CategoryID)
}
