// Package handlerutil holds the conversions every v1 handler shares: error
// kinds to HTTP statuses, the request principal, and the wire formats for ids,
// dates and amounts.
package handlerutil

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/record"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Error converts a service error into a huma status error. Errors without a
// known kind become 500 with fallback as the message.
func Error(err error, fallback string) error {
	switch {
	case errors.Is(err, apperr.ErrBadRequest):
		return huma.Error400BadRequest(apperr.Message(err, fallback))
	case errors.Is(err, apperr.ErrUnauthorized):
		return huma.Error401Unauthorized(apperr.Message(err, fallback))
	case errors.Is(err, apperr.ErrForbidden):
		return huma.Error403Forbidden(apperr.Message(err, fallback))
	case errors.Is(err, apperr.ErrNotFound):
		return huma.Error404NotFound(apperr.Message(err, fallback))
	case errors.Is(err, record.ErrDuplicate):
		return huma.Error400BadRequest("record already exists")
	case errors.Is(err, record.ErrOutOfRange):
		return huma.Error400BadRequest("amount out of range")
	default:
		return huma.NewError(http.StatusInternalServerError, fallback, err)
	}
}

// Principal returns the caller set by the auth middleware.
func Principal(ctx context.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return auth.Principal{}, huma.Error401Unauthorized("unauthorized")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("principalRole", string(p.Role))
	}
	return p, nil
}

func ParseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.Error400BadRequest("invalid " + field)
	}
	return id, nil
}

// ParseOptionalID treats an empty string as absent.
func ParseOptionalID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := ParseID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func ParseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, huma.Error400BadRequest("invalid " + field + ", expected YYYY-MM-DD")
	}
	return date, nil
}

// ParseAmount converts an API float. More than two fractional digits is
// rejected rather than rounded.
func ParseAmount(field string, value float64) (money.Money, error) {
	amount, err := money.FromFloat(value)
	if err != nil {
		return money.Money{}, huma.Error400BadRequest("invalid "+field, err)
	}
	return amount, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime reads a cursor timestamp written by FormatTime.
func ParseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, huma.Error400BadRequest("invalid " + field)
	}
	return t, nil
}

func FormatOptionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
