package actions

import (
	"context"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

// CreateTransfer moves Amount between two of the owner's accounts. Without a
// source, the owner's oldest account is used.
type CreateTransfer struct {
	OwnerID              uuid.UUID
	SourceAccountID      *uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Money
	Date                 time.Time

	Result *transfer.Transfer
}

func (c *CreateTransfer) ActionName() string { return "transfer.create" }

func (c *CreateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateAmount(c.Amount); err != nil {
		return err
	}

	sourceID, err := c.resolveSourceID(ctx, writer)
	if err != nil {
		return err
	}

	resolved, err := lockOwnedAccounts(ctx, writer, c.OwnerID, sourceID, c.DestinationAccountID)
	if err != nil {
		return err
	}
	source := resolved[0]

	if sourceID == c.DestinationAccountID {
		return apperr.BadRequest("source and destination accounts must differ")
	}
	if c.Amount.GreaterThan(source.CurrentBalance) {
		return apperr.BadRequest("insufficient balance in source account")
	}

	tr, err := writer.Transfer.Insert(ctx, &transfer.TransferCreate{
		OwnerID:              c.OwnerID,
		SourceAccountID:      sourceID,
		DestinationAccountID: c.DestinationAccountID,
		Amount:               c.Amount,
		Date:                 c.Date,
	})
	if err != nil {
		return err
	}

	if err := applyLegs(ctx, writer, sourceID, c.DestinationAccountID, c.Amount); err != nil {
		return err
	}

	c.Result = tr
	return nil
}

func (c *CreateTransfer) resolveSourceID(ctx context.Context, writer *storage.Writer) (uuid.UUID, error) {
	if c.SourceAccountID != nil {
		return *c.SourceAccountID, nil
	}
	accounts, err := writer.Account.List(ctx, &account.AccountFilter{OwnerID: &c.OwnerID, Limit: 1})
	if err != nil {
		return uuid.Nil, err
	}
	if len(accounts) == 0 {
		return uuid.Nil, apperr.NotFound("no accounts")
	}
	return accounts[0].ID, nil
}

// lockOwnedAccounts resolves each id through the ownership guard, locking rows
// in ascending id order so two transfers over the same pair cannot deadlock.
// Errors are reported in argument order, and results come back in it.
func lockOwnedAccounts(ctx context.Context, writer *storage.Writer, ownerID uuid.UUID, ids ...uuid.UUID) ([]*account.Account, error) {
	order := slices.Clone(ids)
	slices.SortFunc(order, compareIDs)
	order = slices.Compact(order)

	type lookup struct {
		acc *account.Account
		err error
	}
	found := make(map[uuid.UUID]lookup, len(order))
	for _, id := range order {
		acc, err := ownedAccount(ctx, writer, ownerID, id)
		found[id] = lookup{acc: acc, err: err}
	}

	out := make([]*account.Account, len(ids))
	for i, id := range ids {
		l := found[id]
		if l.err != nil {
			return nil, l.err
		}
		out[i] = l.acc
	}
	return out, nil
}

type leg struct {
	accountID uuid.UUID
	delta     money.Money
}

// applyLegs debits source and credits destination, touching accounts in
// ascending id order.
func applyLegs(ctx context.Context, writer *storage.Writer, sourceID, destinationID uuid.UUID, amount money.Money) error {
	legs := []leg{
		{accountID: sourceID, delta: amount.Neg()},
		{accountID: destinationID, delta: amount},
	}
	slices.SortFunc(legs, func(a, b leg) int { return compareIDs(a.accountID, b.accountID) })
	for _, l := range legs {
		if _, err := writer.Ledger.ApplyDelta(ctx, l.accountID, l.delta); err != nil {
			return err
		}
	}
	return nil
}

func compareIDs(a, b uuid.UUID) int {
	return slices.Compare(a.Bytes(), b.Bytes())
}
