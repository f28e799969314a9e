package account

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

// AccountOutput wraps a single account.
type AccountOutput struct {
	Body Account
}

// UpdateAccountBody lists the editable fields. Absent fields are left as they are.
type UpdateAccountBody struct {
	Name             *string  `json:"name,omitempty" doc:"New account name"`
	Type             *string  `json:"type,omitempty" doc:"New account type"`
	CreditLimit      *float64 `json:"creditLimit,omitempty" doc:"New credit limit"`
	ClearCreditLimit bool     `json:"clearCreditLimit,omitempty" doc:"Remove the credit limit"`
}

type UpdateAccountInput struct {
	AccountIDInput
	Body UpdateAccountBody
}

type DeleteAccountOutput struct {
	Status int
}

func (h *Handler) registerGet(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/{id}",
		Summary:     "Get account",
		Tags:        []string{"Accounts"},
	}, h.handleGet)
}

func (h *Handler) registerUpdate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPatch,
		Path:        "/v1/accounts/{id}",
		Summary:     "Update account",
		Description: "Edits name, type or credit limit. The balance cannot be edited.",
		Tags:        []string{"Accounts"},
	}, h.handleUpdate)
}

func (h *Handler) registerDelete(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-account",
		Method:        http.MethodDelete,
		Path:          "/v1/accounts/{id}",
		Summary:       "Delete account",
		Description:   "Deletes an account that no transaction or transfer refers to.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleDelete)
}

func (h *Handler) handleGet(ctx context.Context, input *AccountIDInput) (*AccountOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlerutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	acc, err := h.AccountService.GetAccount(ctx, p, id)
	if err != nil {
		return nil, handlerutil.Error(err, "failed to get account")
	}
	return &AccountOutput{Body: FromRecord(acc)}, nil
}

func (h *Handler) handleUpdate(ctx context.Context, input *UpdateAccountInput) (*AccountOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlerutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdate(&input.Body)
	if err != nil {
		return nil, err
	}

	acc, err := h.AccountService.UpdateAccount(ctx, p, id, update)
	if err != nil {
		return nil, handlerutil.Error(err, "failed to update account")
	}
	return &AccountOutput{Body: FromRecord(acc)}, nil
}

func parseUpdate(body *UpdateAccountBody) (account.AccountUpdate, error) {
	update := account.AccountUpdate{
		Name: omit.FromPtr(body.Name),
	}
	if body.Type != nil {
		update.Type = omit.From(account.AccountType(*body.Type))
	}

	switch {
	case body.ClearCreditLimit && body.CreditLimit != nil:
		return update, huma.Error400BadRequest("creditLimit and clearCreditLimit are mutually exclusive")
	case body.ClearCreditLimit:
		update.CreditLimit = omitnull.FromPtr[money.Money](nil)
	case body.CreditLimit != nil:
		limit, err := handlerutil.ParseAmount("creditLimit", *body.CreditLimit)
		if err != nil {
			return update, err
		}
		update.CreditLimit = omitnull.From(limit)
	}
	return update, nil
}

func (h *Handler) handleDelete(ctx context.Context, input *AccountIDInput) (*DeleteAccountOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlerutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.AccountService.DeleteAccount(ctx, p, id); err != nil {
		return nil, handlerutil.Error(err, "failed to delete account")
	}
	return &DeleteAccountOutput{Status: http.StatusNoContent}, nil
}
