package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

// UpdateAccount edits name, type and credit limit. The balance is never
// editable here.
type UpdateAccount struct {
	OwnerID   uuid.UUID
	AccountID uuid.UUID
	Update    account.AccountUpdate

	Result *account.Account
}

func (u *UpdateAccount) ActionName() string { return "account.update" }

func (u *UpdateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := ownedAccount(ctx, writer, u.OwnerID, u.AccountID)
	if err != nil {
		return err
	}

	if name, ok := u.Update.Name.Get(); ok {
		if err := validateName("name", name); err != nil {
			return err
		}
	}

	// the limit rule is checked against the account as it will look afterwards
	accountType := acc.Type
	if t, ok := u.Update.Type.Get(); ok {
		if !t.Valid() {
			return apperr.BadRequest("unknown account type %q", t)
		}
		accountType = t
	}
	limit := acc.CreditLimit
	if u.Update.CreditLimit.IsNull() {
		limit = nil
	} else if l, ok := u.Update.CreditLimit.Get(); ok {
		limit = &l
	}
	if err := validateCreditLimit(accountType, limit); err != nil {
		return err
	}

	updated, err := writer.Account.Update(ctx, u.AccountID, &u.Update)
	if err != nil {
		return err
	}

	u.Result = updated
	return nil
}
