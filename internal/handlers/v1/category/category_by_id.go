package category

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
)

type CategoryIDInput struct {
	ID string `path:"id" doc:"Category UUID"`
}

type CategoryOutput struct {
	Body Category
}

type UpdateCategoryBody struct {
	Name *string `json:"name,omitempty" doc:"New name"`
	Kind *string `json:"kind,omitempty" doc:"New kind"`
}

type UpdateCategoryInput struct {
	CategoryIDInput
	Body UpdateCategoryBody
}

type DeleteCategoryOutput struct {
	Status int
}

func (h *Handler) registerByID(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/v1/categories/{id}",
		Summary:     "Get category",
		Tags:        []string{"Categories"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPatch,
		Path:        "/v1/categories/{id}",
		Summary:     "Update category",
		Tags:        []string{"Categories"},
	}, h.handleUpdate)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/v1/categories/{id}",
		Summary:       "Delete category",
		Description:   "Deletes the category. Transactions that used it become uncategorized.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleDelete)
}

func (h *Handler) handleGet(ctx context.Context, input *CategoryIDInput) (*CategoryOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlerutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	c, err := h.CategoryService.GetCategory(ctx, p, id)
	if err != nil {
		return nil, handlerutil.Error(err, "failed to get category")
	}
	return &CategoryOutput{Body: fromRecord(c)}, nil
}

func (h *Handler) handleUpdate(ctx context.Context, input *UpdateCategoryInput) (*CategoryOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlerutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	update := category.CategoryUpdate{Name: omit.FromPtr(input.Body.Name)}
	if input.Body.Kind != nil {
		update.Kind = omit.From(category.Kind(*input.Body.Kind))
	}
	c, err := h.CategoryService.UpdateCategory(ctx, p, id, update)
	if err != nil {
		return nil, handlerutil.Error(err, "failed to update category")
	}
	return &CategoryOutput{Body: fromRecord(c)}, nil
}

func (h *Handler) handleDelete(ctx context.Context, input *CategoryIDInput) (*DeleteCategoryOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlerutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.CategoryService.DeleteCategory(ctx, p, id); err != nil {
		return nil, handlerutil.Error(err, "failed to delete category")
	}
	return &DeleteCategoryOutput{Status: http.StatusNoContent}, nil
}
