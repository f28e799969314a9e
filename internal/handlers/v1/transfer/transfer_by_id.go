package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
)

type TransferIDInput struct {
	ID string `path:"id" doc:"Transfer UUID"`
}

type TransferOutput struct {
	Body Transfer
}

type DeleteTransferOutput struct {
	Status int
}

func (h *Handler) registerByID(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transfer",
		Method:      http.MethodGet,
		Path:        "/v1/transfers/{id}",
		Summary:     "Get transfer",
		Tags:        []string{"Transfers"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-transfer",
		Method:        http.MethodDelete,
		Path:          "/v1/transfers/{id}",
		Summary:       "Delete transfer",
		Description:   "Deletes the transfer and reverses both legs.",
		Tags:          []string{"Transfers"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleDelete)
}

func (h *Handler) handleGet(ctx context.Context, input *TransferIDInput) (*TransferOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlerutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	tr, err := h.TransferService.GetTransfer(ctx, p, id)
	if err != nil {
		return nil, handlerutil.Error(err, "failed to get transfer")
	}
	return &TransferOutput{Body: FromRecord(tr)}, nil
}

func (h *Handler) handleDelete(ctx context.Context, input *TransferIDInput) (*DeleteTransferOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlerutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.TransferService.DeleteTransfer(ctx, p, id); err != nil {
		return nil, handlerutil.Error(err, "failed to delete transfer")
	}
	return &DeleteTransferOutput{Status: http.StatusNoContent}, nil
}
