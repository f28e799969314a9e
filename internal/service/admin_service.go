package service

import (
	"context"
	"time"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/transfer"
)

// AdminService lists records across every owner. Each call requires
// auth.CapabilityViewAll.
type AdminService struct {
	reader *storage.Reader
	now    func() time.Time
}

func NewAdminService(reader *storage.Reader) *AdminService {
	return &AdminService{reader: reader, now: time.Now}
}

func (s *AdminService) ListAllAccounts(ctx context.Context, p auth.Principal, cursor *Cursor) ([]*account.Account, *Cursor, error) {
	if err := auth.Require(p, auth.CapabilityViewAll); err != nil {
		return nil, nil, err
	}
	return listAccounts(ctx, s.reader.Accounts, nil, cursor)
}

func (s *AdminService) ListAllTransfers(ctx context.Context, p auth.Principal, cursor *TimelineCursor) ([]*transfer.Transfer, *TimelineCursor, error) {
	if err := auth.Require(p, auth.CapabilityViewAll); err != nil {
		return nil, nil, err
	}
	return listTransfers(ctx, s.reader.Transfers, nil, cursor, s.now())
}
