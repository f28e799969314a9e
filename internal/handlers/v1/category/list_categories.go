package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
)

type ListCategoriesInput struct {
	Kind     string `query:"kind" doc:"Only categories of this kind"`
	Position int    `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit    int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, 0 returns everything"`
}

type ListCategoriesResponseBody struct {
	Categories []Category              `json:"categories" doc:"Categories ordered by name"`
	NextCursor *handlerutil.PageCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

type ListCategoriesOutput struct {
	Body ListCategoriesResponseBody
}

func (h *Handler) registerList(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.handleList)
}

func (h *Handler) handleList(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	var kind *category.Kind
	if input.Kind != "" {
		k := category.Kind(input.Kind)
		if !k.Valid() {
			return nil, huma.Error400BadRequest("kind must be expense or income")
		}
		kind = &k
	}
	categories, next, err := h.CategoryService.ListCategories(ctx, p, kind, handlerutil.PageQuery(input.Position, input.Limit))
	if err != nil {
		return nil, handlerutil.Error(err, "failed to list categories")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("categoryCount", len(categories))
	}

	resp := ListCategoriesResponseBody{
		Categories: make([]Category, len(categories)),
		NextCursor: handlerutil.NextPageCursor(next),
	}
	for i, c := range categories {
		resp.Categories[i] = fromRecord(c)
	}
	return &ListCategoriesOutput{Body: resp}, nil
}
