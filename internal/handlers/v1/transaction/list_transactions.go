package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/logging"
)

// ListTransactionsBody is the request body for listing transactions.
type ListTransactionsBody struct {
	Cursor *handlerutil.TimelineCursor `json:"cursor,omitempty" doc:"Pagination cursor, omit to list everything"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Body ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction               `json:"transactions" doc:"Transactions, newest date first"`
	NextCursor   *handlerutil.TimelineCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

func (h *Handler) registerList(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transactions/list",
		Summary:     "List transactions",
		Description: "Returns the caller's transactions using cursor-based pagination.",
		Tags:        []string{"Transactions"},
	}, h.handleList)
}

func (h *Handler) handleList(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	requestCursor, err := input.Body.Cursor.ToService()
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, nextCursor, err := h.TransactionService.ListTransactions(ctx, p, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, handlerutil.Error(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
		NextCursor:   handlerutil.NextTimelineCursor(nextCursor),
	}
	for i, tx := range transactions {
		resp.Transactions[i] = fromRecord(tx)
	}
	return &ListTransactionsOutput{Body: resp}, nil
}
