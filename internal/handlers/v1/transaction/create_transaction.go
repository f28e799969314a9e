package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID   string  `json:"accountID" required:"true" doc:"Account UUID"`
	CategoryID  string  `json:"categoryID,omitempty" doc:"Category UUID"`
	Description *string `json:"description,omitempty" doc:"Free-text description, at most 500 characters"`
	Amount      float64 `json:"amount" required:"true" doc:"Positive amount with at most two decimals"`
	Kind        string  `json:"kind" required:"true" doc:"expense subtracts from the account, income adds to it"`
	Date        string  `json:"date,omitempty" doc:"YYYY-MM-DD transaction date, defaults to today"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

func (h *Handler) registerCreate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transactions",
		Summary:       "Create transaction",
		Description:   "Records a transaction and applies it to the account balance.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handleCreate)
}

func todayUTC() string {
	return handlerutil.FormatDate(time.Now().UTC())
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	p, err := handlerutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	accountID, err := handlerutil.ParseID("accountID", input.Body.AccountID)
	if err != nil {
		return nil, err
	}
	categoryID, err := handlerutil.ParseOptionalID("categoryID", input.Body.CategoryID)
	if err != nil {
		return nil, err
	}
	amount, err := handlerutil.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}
	dateValue := input.Body.Date
	if dateValue == "" {
		dateValue = h.today()
	}
	date, err := handlerutil.ParseDate("date", dateValue)
	if err != nil {
		return nil, err
	}

	txn, err := h.TransactionService.CreateTransaction(ctx, p, transaction.TransactionCreate{
		AccountID:   accountID,
		CategoryID:  categoryID,
		Description: input.Body.Description,
		Amount:      amount,
		Kind:        category.Kind(input.Body.Kind),
		Date:        date,
	})
	if err != nil {
		return nil, handlerutil.Error(err, "failed to create transaction")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", txn.ID.String())
	}
	return &CreateTransactionOutput{Status: http.StatusCreated, Body: fromRecord(txn)}, nil
}
