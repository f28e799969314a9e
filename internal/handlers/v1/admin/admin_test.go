package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/account"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/handlertest"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/transfer"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/service"
	storageaccount "github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/memory"
)

// seed writes one account for each of two owners straight through the store.
func seed(t *testing.T) *service.AdminService {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStorage()
	writer, err := s.Write(ctx)
	require.NoError(t, err)
	for _, name := range []string{"Alice's", "Bob's"} {
		_, err := writer.Account.Insert(ctx, &storageaccount.AccountCreate{
			OwnerID:        uuid.Must(uuid.NewV4()),
			Name:           name,
			Type:           storageaccount.AccountTypeWallet,
			InitialBalance: money.MustParse("1.00"),
		})
		require.NoError(t, err)
	}
	require.NoError(t, writer.Commit(ctx))
	return service.NewAdminService(s.Reader)
}

func TestListAllAccounts_Admin(t *testing.T) {
	api := handlertest.NewAPI(t, handlertest.Admin())
	NewHandler(seed(t)).Register(api)

	resp := api.Get("/v1/admin/accounts", handlertest.Authorization)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body account.ListAccountsResponseBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Accounts, 2)
}

func TestListAll_ForbiddenForUsers(t *testing.T) {
	api := handlertest.NewAPI(t, handlertest.User())
	NewHandler(seed(t)).Register(api)

	assert.Equal(t, http.StatusForbidden, api.Get("/v1/admin/accounts", handlertest.Authorization).Code)
	assert.Equal(t, http.StatusForbidden, api.Post("/v1/admin/transfers/list", handlertest.Authorization, map[string]any{}).Code)
}

func TestListAllTransfers_Empty(t *testing.T) {
	api := handlertest.NewAPI(t, handlertest.Admin())
	NewHandler(seed(t)).Register(api)

	resp := api.Post("/v1/admin/transfers/list", handlertest.Authorization, map[string]any{})

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body transfer.ListTransfersResponseBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Empty(t, body.Transfers)
}
