package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

type CreateTransferBody struct {
	SourceAccountID      string  `json:"sourceAccountID,omitempty" doc:"Account to debit, defaults to the caller's oldest account"`
	DestinationAccountID string  `json:"destinationAccountID" required:"true" doc:"Account to credit"`
	Amount               float64 `json:"amount" required:"true" doc:"Positive amount, at most the source balance"`
	Date                 string  `json:"date" required:"true" doc:"YYYY-MM-DD transfer date"`
}

type CreateTransferInput struct {
	Body CreateTransferBody
}

type CreateTransferOutput struct {
	Status int
	Body   Transfer
}

func (h *Handler) registerCreate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transfer",
		Method:        http.MethodPost,
		Path:          "/v1/transfers",
		Summary:       "Create transfer",
		Description:   "Moves money between two of the caller's accounts. Both balances change together.",
		Tags:          []string{"Transfers"},
		DefaultStatus: http.StatusCreated,
	}, h.handleCreate)
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	sourceID, err := handlerutil.ParseOptionalID("sourceAccountID", input.Body.SourceAccountID)
	if err != nil {
		return nil, err
	}
	destinationID, err := handlerutil.ParseID("destinationAccountID", input.Body.DestinationAccountID)
	if err != nil {
		return nil, err
	}
	amount, err := handlerutil.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}
	date, err := handlerutil.ParseDate("date", input.Body.Date)
	if err != nil {
		return nil, err
	}

	tr, err := h.TransferService.CreateTransfer(ctx, p, service.TransferCreate{
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		Date:                 date,
	})
	if err != nil {
		return nil, handlerutil.Error(err, "failed to create transfer")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transferID", tr.ID.String())
	}
	return &CreateTransferOutput{Status: http.StatusCreated, Body: FromRecord(tr)}, nil
}
