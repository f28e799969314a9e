package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	Name           string   `json:"name" required:"true" doc:"Account name, 3 to 100 characters"`
	Type           string   `json:"type" required:"true" doc:"Account type: wallet, bank, vault, investment or other"`
	InitialBalance float64  `json:"initialBalance,omitempty" doc:"Opening balance, defaults to 0"`
	CreditLimit    *float64 `json:"creditLimit,omitempty" doc:"Credit limit, bank accounts only"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   Account
}

func (h *Handler) registerCreate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/accounts",
		Summary:       "Create account",
		Description:   "Creates an account owned by the caller. The current balance starts at the initial balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.handleCreate)
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	initial, err := handlerutil.ParseAmount("initialBalance", input.Body.InitialBalance)
	if err != nil {
		return nil, err
	}
	var creditLimit *money.Money
	if input.Body.CreditLimit != nil {
		limit, err := handlerutil.ParseAmount("creditLimit", *input.Body.CreditLimit)
		if err != nil {
			return nil, err
		}
		creditLimit = &limit
	}

	acc, err := h.AccountService.CreateAccount(ctx, p, account.AccountCreate{
		Name:           input.Body.Name,
		Type:           account.AccountType(input.Body.Type),
		InitialBalance: initial,
		CreditLimit:    creditLimit,
	})
	if err != nil {
		return nil, handlerutil.Error(err, "failed to create account")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("accountID", acc.ID.String())
	}
	return &CreateAccountOutput{Status: http.StatusCreated, Body: FromRecord(acc)}, nil
}
