package category

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	OwnerID   string `json:"ownerID" doc:"Owner UUID"`
	Name      string `json:"name" doc:"Category name"`
	Kind      string `json:"kind" doc:"expense or income"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromRecord(c *category.Category) Category {
	return Category{
		ID:        c.ID.String(),
		OwnerID:   c.OwnerID.String(),
		Name:      c.Name,
		Kind:      string(c.Kind),
		CreatedAt: handlerutil.FormatTime(c.CreatedAt),
	}
}

type categoryService interface {
	CreateCategory(ctx context.Context, p auth.Principal, create category.CategoryCreate) (*category.Category, error)
	GetCategory(ctx context.Context, p auth.Principal, id uuid.UUID) (*category.Category, error)
	ListCategories(ctx context.Context, p auth.Principal, kind *category.Kind, cursor *service.Cursor) ([]*category.Category, *service.Cursor, error)
	UpdateCategory(ctx context.Context, p auth.Principal, id uuid.UUID, update category.CategoryUpdate) (*category.Category, error)
	DeleteCategory(ctx context.Context, p auth.Principal, id uuid.UUID) error
}

// Handler serves /v1/categories.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

func (h *Handler) Register(api huma.API) {
	h.registerCreate(api)
	h.registerList(api)
	h.registerByID(api)
}
