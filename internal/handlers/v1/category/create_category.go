package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
)

type CreateCategoryBody struct {
	Name string `json:"name" required:"true" doc:"Category name, unique per kind"`
	Kind string `json:"kind" required:"true" doc:"expense or income"`
}

type CreateCategoryInput struct {
	Body CreateCategoryBody
}

type CreateCategoryOutput struct {
	Status int
	Body   Category
}

func (h *Handler) registerCreate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/categories",
		Summary:       "Create category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.handleCreate)
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	c, err := h.CategoryService.CreateCategory(ctx, p, category.CategoryCreate{
		Name: input.Body.Name,
		Kind: category.Kind(input.Body.Kind),
	})
	if err != nil {
		return nil, handlerutil.Error(err, "failed to create category")
	}
	return &CreateCategoryOutput{Status: http.StatusCreated, Body: fromRecord(c)}, nil
}
