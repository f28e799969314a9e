package auth

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/apperr"
	"github.com/carson-networks/budget-ledger/internal/logging"
)

// Middleware authenticates every huma operation. Requests without a valid
// bearer token are answered with 401 before reaching the handler.
func Middleware(api huma.API, resolver Resolver, log *logrus.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := BearerToken(ctx.Header("Authorization"))
		if !ok {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing bearer token")
			return
		}

		principal, err := resolver.Resolve(ctx.Context(), token)
		if err != nil {
			if !errors.Is(err, apperr.ErrUnauthorized) {
				log.WithError(err).Error("Auth.Middleware.resolve principal")
			}
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, apperr.Message(err, "unauthorized"))
			return
		}

		if logData := logging.GetLogData(ctx.Context()); logData != nil {
			logData.AddData("principal", principal.ID.String())
		}
		next(huma.WithValue(ctx, principalKey{}, principal))
	}
}
