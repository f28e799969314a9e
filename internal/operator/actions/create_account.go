package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

type CreateAccount struct {
	OwnerID        uuid.UUID
	Name           string
	Type           account.AccountType
	InitialBalance money.Money
	CreditLimit    *money.Money

	Result *account.Account
}

func (c *CreateAccount) ActionName() string { return "account.create" }

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateName("name", c.Name); err != nil {
		return err
	}
	if !c.Type.Valid() {
		return apperr.BadRequest("unknown account type %q", c.Type)
	}
	if c.InitialBalance.IsNegative() {
		return apperr.BadRequest("initial balance must not be negative")
	}
	if !c.InitialBalance.InRange() {
		return apperr.BadRequest("initial balance must be at most %s", money.Max)
	}
	if err := validateCreditLimit(c.Type, c.CreditLimit); err != nil {
		return err
	}

	acc, err := writer.Account.Insert(ctx, &account.AccountCreate{
		OwnerID:        c.OwnerID,
		Name:           c.Name,
		Type:           c.Type,
		InitialBalance: c.InitialBalance,
		CreditLimit:    c.CreditLimit,
	})
	if err != nil {
		return err
	}

	c.Result = acc
	return nil
}
