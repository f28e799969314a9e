package transfer

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

// Transfer is the API response model for a transfer.
type Transfer struct {
	ID                   string  `json:"id" doc:"Transfer UUID"`
	OwnerID              string  `json:"ownerID" doc:"Owner UUID"`
	SourceAccountID      string  `json:"sourceAccountID" doc:"Debited account UUID"`
	DestinationAccountID string  `json:"destinationAccountID" doc:"Credited account UUID"`
	Amount               float64 `json:"amount" doc:"Positive amount"`
	Date                 string  `json:"date" doc:"YYYY-MM-DD transfer date"`
	CreatedAt            string  `json:"createdAt" doc:"RFC3339 creation time"`
}

// FromRecord converts a stored transfer to its API form.
func FromRecord(t *transfer.Transfer) Transfer {
	return Transfer{
		ID:                   t.ID.String(),
		OwnerID:              t.OwnerID.String(),
		SourceAccountID:      t.SourceAccountID.String(),
		DestinationAccountID: t.DestinationAccountID.String(),
		Amount:               t.Amount.Float64(),
		Date:                 handlerutil.FormatDate(t.Date),
		CreatedAt:            handlerutil.FormatTime(t.CreatedAt),
	}
}

// FromRecords converts a page of transfers, never returning nil.
func FromRecords(transfers []*transfer.Transfer) []Transfer {
	resp := make([]Transfer, len(transfers))
	for i, t := range transfers {
		resp[i] = FromRecord(t)
	}
	return resp
}

type transferService interface {
	CreateTransfer(ctx context.Context, p auth.Principal, create service.TransferCreate) (*transfer.Transfer, error)
	GetTransfer(ctx context.Context, p auth.Principal, id uuid.UUID) (*transfer.Transfer, error)
	ListTransfers(ctx context.Context, p auth.Principal, cursor *service.TimelineCursor) ([]*transfer.Transfer, *service.TimelineCursor, error)
	DeleteTransfer(ctx context.Context, p auth.Principal, id uuid.UUID) error
}

// Handler serves /v1/transfers. Transfers cannot be edited.
type Handler struct {
	TransferService transferService
}

func NewHandler(svc transferService) *Handler {
	return &Handler{TransferService: svc}
}

func (h *Handler) Register(api huma.API) {
	h.registerCreate(api)
	h.registerList(api)
	h.registerByID(api)
}
