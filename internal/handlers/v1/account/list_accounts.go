package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/logging"
)

// ListAccountsInput is the Huma input for listing accounts. Without a
// position or limit every account is returned.
type ListAccountsInput struct {
	Position int `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit    int `query:"limit" minimum:"0" maximum:"100" doc:"Page size, 0 returns everything"`
}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts   []Account               `json:"accounts" doc:"Page of accounts"`
	NextCursor *handlerutil.PageCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

func (h *Handler) registerList(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns the caller's accounts in creation order.",
		Tags:        []string{"Accounts"},
	}, h.handleList)
}

func (h *Handler) handleList(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	accounts, next, err := h.AccountService.ListAccounts(ctx, p, handlerutil.PageQuery(input.Position, input.Limit))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, handlerutil.Error(err, "failed to list accounts")
	}

	if logData != nil {
		logData.AddData("accountCount", len(accounts))
	}
	return &ListAccountsOutput{Body: ListAccountsResponseBody{
		Accounts:   FromRecords(accounts),
		NextCursor: handlerutil.NextPageCursor(next),
	}}, nil
}
