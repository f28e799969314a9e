package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

type TransactionIDInput struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

type TransactionOutput struct {
	Body Transaction
}

// UpdateTransactionBody lists the editable fields. Amount and kind cannot
// change; delete and recreate the transaction instead.
type UpdateTransactionBody struct {
	Description      *string `json:"description,omitempty" doc:"New description"`
	ClearDescription bool    `json:"clearDescription,omitempty" doc:"Remove the description"`
	Date             string  `json:"date,omitempty" doc:"New YYYY-MM-DD date"`
	AccountID        string  `json:"accountID,omitempty" doc:"New account UUID. Moving does not move the balance effect; a later delete reverses it on the new account."`
	CategoryID       string  `json:"categoryID,omitempty" doc:"New category UUID"`
	ClearCategory    bool    `json:"clearCategory,omitempty" doc:"Remove the category"`
}

type UpdateTransactionInput struct {
	TransactionIDInput
	Body UpdateTransactionBody
}

type DeleteTransactionOutput struct {
	Status int
}

func (h *Handler) registerByID(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transactions/{id}",
		Summary:     "Update transaction",
		Description: "Edits description, date, account or category. Balances are not recomputed.",
		Tags:        []string{"Transactions"},
	}, h.handleUpdate)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transactions/{id}",
		Summary:       "Delete transaction",
		Description:   "Deletes the transaction and reverses its effect on the account balance.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleDelete)
}

func (h *Handler) handleGet(ctx context.Context, input *TransactionIDInput) (*TransactionOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlerutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	txn, err := h.TransactionService.GetTransaction(ctx, p, id)
	if err != nil {
		return nil, handlerutil.Error(err, "failed to get transaction")
	}
	return &TransactionOutput{Body: fromRecord(txn)}, nil
}

func (h *Handler) handleUpdate(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
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

	txn, err := h.TransactionService.UpdateTransaction(ctx, p, id, update)
	if err != nil {
		return nil, handlerutil.Error(err, "failed to update transaction")
	}
	return &TransactionOutput{Body: fromRecord(txn)}, nil
}

func parseUpdate(body *UpdateTransactionBody) (transaction.TransactionUpdate, error) {
	var update transaction.TransactionUpdate

	switch {
	case body.ClearDescription && body.Description != nil:
		return update, huma.Error400BadRequest("description and clearDescription are mutually exclusive")
	case body.ClearDescription:
		update.Description = omitnull.FromPtr[string](nil)
	case body.Description != nil:
		update.Description = omitnull.From(*body.Description)
	}

	if body.Date != "" {
		date, err := handlerutil.ParseDate("date", body.Date)
		if err != nil {
			return update, err
		}
		update.Date = omit.From(date)
	}
	if body.AccountID != "" {
		accountID, err := handlerutil.ParseID("accountID", body.AccountID)
		if err != nil {
			return update, err
		}
		update.AccountID = omit.From(accountID)
	}

	switch {
	case body.ClearCategory && body.CategoryID != "":
		return update, huma.Error400BadRequest("categoryID and clearCategory are mutually exclusive")
	case body.ClearCategory:
		update.CategoryID = omitnull.FromPtr[uuid.UUID](nil)
	case body.CategoryID != "":
		categoryID, err := handlerutil.ParseID("categoryID", body.CategoryID)
		if err != nil {
			return update, err
		}
		update.CategoryID = omitnull.From(categoryID)
	}
	return update, nil
}

func (h *Handler) handleDelete(ctx context.Context, input *TransactionIDInput) (*DeleteTransactionOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlerutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.DeleteTransaction(ctx, p, id); err != nil {
		return nil, handlerutil.Error(err, "failed to delete transaction")
	}
	return &DeleteTransactionOutput{Status: http.StatusNoContent}, nil
}
