// Package admin serves the cross-owner listings. The service layer checks the
// caller's capabilities; handlers only translate.
package admin

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/account"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/transfer"
	"github.com/carson-networks/budget-ledger/internal/service"
	storageaccount "github.com/carson-networks/budget-ledger/internal/storage/account"
	storagetransfer "github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

type adminService interface {
	ListAllAccounts(ctx context.Context, p auth.Principal, cursor *service.Cursor) ([]*storageaccount.Account, *service.Cursor, error)
	ListAllTransfers(ctx context.Context, p auth.Principal, cursor *service.TimelineCursor) ([]*storagetransfer.Transfer, *service.TimelineCursor, error)
}

type Handler struct {
	AdminService adminService
}

func NewHandler(svc adminService) *Handler {
	return &Handler{AdminService: svc}
}

type ListAllAccountsInput struct {
	Position int `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit    int `query:"limit" minimum:"0" maximum:"100" doc:"Page size, 0 returns everything"`
}

type ListAllAccountsOutput struct {
	Body account.ListAccountsResponseBody
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/admin/accounts",
		Summary:     "List every account",
		Description: "Returns the accounts of every owner. Requires the view_all capability.",
		Tags:        []string{"Admin"},
	}, h.handleListAccounts)

	huma.Register(api, huma.Operation{
		OperationID: "admin-list-transfers",
		Method:      http.MethodPost,
		Path:        "/v1/admin/transfers/list",
		Summary:     "List every transfer",
		Description: "Returns the transfers of every owner. Requires the view_all capability.",
		Tags:        []string{"Admin"},
	}, h.handleListTransfers)
}

func (h *Handler) handleListAccounts(ctx context.Context, input *ListAllAccountsInput) (*ListAllAccountsOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	accounts, next, err := h.AdminService.ListAllAccounts(ctx, p, handlerutil.PageQuery(input.Position, input.Limit))
	if err != nil {
		return nil, handlerutil.Error(err, "failed to list accounts")
	}
	return &ListAllAccountsOutput{Body: account.ListAccountsResponseBody{
		Accounts:   account.FromRecords(accounts),
		NextCursor: handlerutil.NextPageCursor(next),
	}}, nil
}

func (h *Handler) handleListTransfers(ctx context.Context, input *transfer.ListTransfersInput) (*transfer.ListTransfersOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	cursor, err := input.Body.Cursor.ToService()
	if err != nil {
		return nil, err
	}

	transfers, next, err := h.AdminService.ListAllTransfers(ctx, p, cursor)
	if err != nil {
		return nil, handlerutil.Error(err, "failed to list transfers")
	}
	return &transfer.ListTransfersOutput{Body: transfer.ListTransfersResponseBody{
		Transfers:  transfer.FromRecords(transfers),
		NextCursor: handlerutil.NextTimelineCursor(next),
	}}, nil
}
