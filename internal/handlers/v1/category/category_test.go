package category

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlertest"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, p auth.Principal, create category.CategoryCreate) (*category.Category, error) {
	args := m.Called(ctx, p, create)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockCategoryService) GetCategory(ctx context.Context, p auth.Principal, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, p, id)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockCategoryService) ListCategories(ctx context.Context, p auth.Principal, kind *category.Kind, cursor *service.Cursor) ([]*category.Category, *service.Cursor, error) {
	args := m.Called(ctx, p, kind, cursor)
	rows, _ := args.Get(0).([]*category.Category)
	next, _ := args.Get(1).(*service.Cursor)
	return rows, next, args.Error(2)
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, p auth.Principal, id uuid.UUID, update category.CategoryUpdate) (*category.Category, error) {
	args := m.Called(ctx, p, id, update)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

func newTestAPI(t *testing.T, p auth.Principal) (humatest.TestAPI, *mockCategoryService) {
	t.Helper()
	svc := &mockCategoryService{}
	t.Cleanup(func() { svc.AssertExpectations(t) })
	api := handlertest.NewAPI(t, p)
	NewHandler(svc).Register(api)
	return api, svc
}

func sampleCategory(owner uuid.UUID, name string, kind category.Kind) *category.Category {
	return &category.Category{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   owner,
		Name:      name,
		Kind:      kind,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateCategory(t *testing.T) {
	p := handlertest.User()
	api, svc := newTestAPI(t, p)
	c := sampleCategory(p.ID, "Rent", category.KindExpense)

	svc.On("CreateCategory", mock.Anything, p, category.CategoryCreate{Name: "Rent", Kind: category.KindExpense}).Return(c, nil)

	resp := api.Post("/v1/categories", handlertest.Authorization, map[string]any{"name": "Rent", "kind": "expense"})

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var body Category
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "expense", body.Kind)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	p := handlertest.User()
	api, svc := newTestAPI(t, p)

	svc.On("CreateCategory", mock.Anything, p, mock.Anything).Return(nil, apperr.BadRequest("expense category Rent already exists")).Once()
	svc.On("CreateCategory", mock.Anything, p, mock.Anything).Return(nil, record.ErrDuplicate).Once()

	resp := api.Post("/v1/categories", handlertest.Authorization, map[string]any{"name": "Rent", "kind": "expense"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// A race lost at the unique index surfaces the same way.
	resp = api.Post("/v1/categories", handlertest.Authorization, map[string]any{"name": "Rent", "kind": "expense"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListCategories_KindFilter(t *testing.T) {
	p := handlertest.User()
	api, svc := newTestAPI(t, p)
	income := category.KindIncome

	svc.On("ListCategories", mock.Anything, p, &income, (*service.Cursor)(nil)).
		Return([]*category.Category{sampleCategory(p.ID, "Salary", income)}, nil, nil)

	resp := api.Get("/v1/categories?kind=income", handlertest.Authorization)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body ListCategoriesResponseBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "Salary", body.Categories[0].Name)

	assert.Equal(t, http.StatusBadRequest, api.Get("/v1/categories?kind=savings", handlertest.Authorization).Code)
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	p := handlertest.User()
	api, svc := newTestAPI(t, p)
	c := sampleCategory(p.ID, "Food", category.KindExpense)

	svc.On("UpdateCategory", mock.Anything, p, c.ID, mock.MatchedBy(func(u category.CategoryUpdate) bool {
		name, ok := u.Name.Get()
		return ok && name == "Food" && !u.Kind.IsValue()
	})).Return(c, nil)
	svc.On("DeleteCategory", mock.Anything, p, c.ID).Return(nil)

	resp := api.Patch("/v1/categories/"+c.ID.String(), handlertest.Authorization, map[string]any{"name": "Food"})
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = api.Delete("/v1/categories/"+c.ID.String(), handlertest.Authorization)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}
