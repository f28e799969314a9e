package handlerutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	return statusErr.GetStatus()
}

func TestError_MapsKinds(t *testing.T) {
	for want, err := range map[int]error{
		http.StatusBadRequest:          apperr.BadRequest("amount must be greater than zero"),
		http.StatusUnauthorized:        apperr.Unauthorized("invalid or expired token"),
		http.StatusForbidden:           fmt.Errorf("wrapped: %w", apperr.Forbidden("not yours")),
		http.StatusNotFound:            apperr.NotFound("account not found"),
		http.StatusInternalServerError: errors.New("connection reset"),
	} {
		assert.Equal(t, want, statusOf(t, Error(err, "failed")), err.Error())
	}

	dup := Error(fmt.Errorf("insert: %w", record.ErrDuplicate), "failed")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, dup))

	overflow := Error(fmt.Errorf("insert: %w", record.ErrOutOfRange), "failed")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, overflow))
}

func TestError_KeepsMessage(t *testing.T) {
	err := Error(apperr.NotFound("transfer not found"), "failed to get transfer")
	assert.Contains(t, err.Error(), "transfer not found")

	err = Error(errors.New("boom"), "failed to get transfer")
	assert.Contains(t, err.Error(), "failed to get transfer")
}

func TestPrincipal(t *testing.T) {
	_, err := Principal(context.Background())
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	p := auth.Principal{ID: uuid.Must(uuid.NewV4()), Role: auth.RoleUser}
	got, err := Principal(auth.WithPrincipal(context.Background(), p))
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestParsers(t *testing.T) {
	id, err := ParseOptionalID("categoryID", "")
	assert.NoError(t, err)
	assert.Nil(t, id)

	_, err = ParseID("accountID", "123")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	date, err := ParseDate("date", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), date)
	_, err = ParseDate("date", "2023-02-29")
	assert.Error(t, err)

	amount, err := ParseAmount("amount", 19.99)
	require.NoError(t, err)
	assert.Equal(t, "19.99", amount.String())
	_, err = ParseAmount("amount", 19.999)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestTimelineCursor(t *testing.T) {
	var none *TimelineCursor
	c, err := none.ToService()
	assert.NoError(t, err)
	assert.Nil(t, c)

	at := time.Date(2025, 1, 1, 12, 0, 0, 42, time.UTC)
	wire := NextTimelineCursor(&service.TimelineCursor{Position: 5, Limit: 5, MaxCreationTime: at})
	back, err := wire.ToService()
	require.NoError(t, err)
	assert.True(t, back.MaxCreationTime.Equal(at))
	assert.Equal(t, 5, back.Position)

	assert.Nil(t, NextTimelineCursor(nil))
	assert.Nil(t, PageQuery(0, 0))
	assert.Equal(t, 10, PageQuery(0, 10).Limit)
}
