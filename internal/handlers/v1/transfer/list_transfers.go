package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/logging"
)

// ListTransfersBody is shared by the owner and admin listings.
type ListTransfersBody struct {
	Cursor *handlerutil.TimelineCursor `json:"cursor,omitempty" doc:"Pagination cursor, omit to list everything"`
}

type ListTransfersInput struct {
	Body ListTransfersBody
}

type ListTransfersResponseBody struct {
	Transfers  []Transfer                  `json:"transfers" doc:"Transfers, newest date first"`
	NextCursor *handlerutil.TimelineCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

type ListTransfersOutput struct {
	Body ListTransfersResponseBody
}

func (h *Handler) registerList(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transfers",
		Method:      http.MethodPost,
		Path:        "/v1/transfers/list",
		Summary:     "List transfers",
		Tags:        []string{"Transfers"},
	}, h.handleList)
}

func (h *Handler) handleList(ctx context.Context, input *ListTransfersInput) (*ListTransfersOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	cursor, err := input.Body.Cursor.ToService()
	if err != nil {
		return nil, err
	}

	transfers, next, err := h.TransferService.ListTransfers(ctx, p, cursor)
	if err != nil {
		return nil, handlerutil.Error(err, "failed to list transfers")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transferCount", len(transfers))
	}
	return &ListTransfersOutput{Body: ListTransfersResponseBody{
		Transfers:  FromRecords(transfers),
		NextCursor: handlerutil.NextTimelineCursor(next),
	}}, nil
}
