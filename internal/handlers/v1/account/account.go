package account

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

// Account is the API response model for an account.
type Account struct {
	ID             string   `json:"id" doc:"Account UUID"`
	OwnerID        string   `json:"ownerID" doc:"Owner UUID"`
	Name           string   `json:"name" doc:"Account name"`
	Type           string   `json:"type" doc:"Account type: wallet, bank, vault, investment or other"`
	InitialBalance float64  `json:"initialBalance" doc:"Balance the account was opened with"`
	CurrentBalance float64  `json:"currentBalance" doc:"Current balance"`
	CreditLimit    *float64 `json:"creditLimit,omitempty" doc:"Credit limit, bank accounts only"`
	CreatedAt      string   `json:"createdAt" doc:"RFC3339 creation time"`
}

// FromRecord converts a stored account to its API form.
func FromRecord(acc *account.Account) Account {
	resp := Account{
		ID:             acc.ID.String(),
		OwnerID:        acc.OwnerID.String(),
		Name:           acc.Name,
		Type:           string(acc.Type),
		InitialBalance: acc.InitialBalance.Float64(),
		CurrentBalance: acc.CurrentBalance.Float64(),
		CreatedAt:      handlerutil.FormatTime(acc.CreatedAt),
	}
	if acc.CreditLimit != nil {
		limit := acc.CreditLimit.Float64()
		resp.CreditLimit = &limit
	}
	return resp
}

// FromRecords converts a page of accounts, never returning nil.
func FromRecords(accounts []*account.Account) []Account {
	resp := make([]Account, len(accounts))
	for i, acc := range accounts {
		resp[i] = FromRecord(acc)
	}
	return resp
}

type accountService interface {
	CreateAccount(ctx context.Context, p auth.Principal, create account.AccountCreate) (*account.Account, error)
	GetAccount(ctx context.Context, p auth.Principal, id uuid.UUID) (*account.Account, error)
	ListAccounts(ctx context.Context, p auth.Principal, cursor *service.Cursor) ([]*account.Account, *service.Cursor, error)
	UpdateAccount(ctx context.Context, p auth.Principal, id uuid.UUID, update account.AccountUpdate) (*account.Account, error)
	DeleteAccount(ctx context.Context, p auth.Principal, id uuid.UUID) error
}

// Handler serves /v1/accounts.
type Handler struct {
	AccountService accountService
}

func NewHandler(svc accountService) *Handler {
	return &Handler{AccountService: svc}
}

// Register registers every account endpoint with the Huma API.
func (h *Handler) Register(api huma.API) {
	h.registerCreate(api)
	h.registerList(api)
	h.registerGet(api)
	h.registerUpdate(api)
	h.registerDelete(api)
}

// AccountIDInput addresses a single account.
type AccountIDInput struct {
	ID string `path:"id" doc:"Account UUID"`
}
