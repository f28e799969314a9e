// Package handlertest builds humatest APIs that authenticate every request as
// a fixed principal.
package handlertest

import (
	"context"
	"io"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/auth"
)

// Authorization is the header value NewAPI accepts.
const Authorization = "Authorization: Bearer test-token"

type staticResolver struct {
	principal auth.Principal
}

func (r staticResolver) Resolve(_ context.Context, token string) (auth.Principal, error) {
	if token != "test-token" {
		return auth.Principal{}, apperr.Unauthorized("invalid or expired token")
	}
	return r.principal, nil
}

// NewAPI returns a test API whose auth middleware maps Authorization to p.
// Register handlers after calling it.
func NewAPI(t *testing.T, p auth.Principal) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	log := logrus.New()
	log.Out = io.Discard
	api.UseMiddleware(auth.Middleware(api, staticResolver{principal: p}, log))
	return api
}

func User() auth.Principal {
	return auth.Principal{ID: uuid.Must(uuid.NewV4()), Role: auth.RoleUser}
}

func Admin() auth.Principal {
	return auth.Principal{ID: uuid.Must(uuid.NewV4()), Role: auth.RoleAdmin}
}
