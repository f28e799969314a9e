package transaction

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string  `json:"id" doc:"Transaction UUID"`
	OwnerID     string  `json:"ownerID" doc:"Owner UUID"`
	AccountID   string  `json:"accountID" doc:"Account UUID"`
	CategoryID  *string `json:"categoryID,omitempty" doc:"Category UUID, absent when uncategorized"`
	Description *string `json:"description,omitempty" doc:"Free-text description"`
	Amount      float64 `json:"amount" doc:"Positive amount"`
	Kind        string  `json:"kind" doc:"expense or income"`
	Date        string  `json:"date" doc:"YYYY-MM-DD transaction date"`
	CreatedAt   string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromRecord(t *transaction.Transaction) Transaction {
	return Transaction{
		ID:          t.ID.String(),
		OwnerID:     t.OwnerID.String(),
		AccountID:   t.AccountID.String(),
		CategoryID:  handlerutil.FormatOptionalID(t.CategoryID),
		Description: t.Description,
		Amount:      t.Amount.Float64(),
		Kind:        string(t.Kind),
		Date:        handlerutil.FormatDate(t.Date),
		CreatedAt:   handlerutil.FormatTime(t.CreatedAt),
	}
}

type transactionService interface {
	CreateTransaction(ctx context.Context, p auth.Principal, create transaction.TransactionCreate) (*transaction.Transaction, error)
	GetTransaction(ctx context.Context, p auth.Principal, id uuid.UUID) (*transaction.Transaction, error)
	ListTransactions(ctx context.Context, p auth.Principal, cursor *service.TimelineCursor) ([]*transaction.Transaction, *service.TimelineCursor, error)
	UpdateTransaction(ctx context.Context, p auth.Principal, id uuid.UUID, update transaction.TransactionUpdate) (*transaction.Transaction, error)
	DeleteTransaction(ctx context.Context, p auth.Principal, id uuid.UUID) error
}

// Handler serves /v1/transactions.
type Handler struct {
	TransactionService transactionService
	today              func() string
}

func NewHandler(svc transactionService) *Handler {
	return &Handler{TransactionService: svc, today: todayUTC}
}

func (h *Handler) Register(api huma.API) {
	h.registerCreate(api)
	h.registerList(api)
	h.registerByID(api)
}
