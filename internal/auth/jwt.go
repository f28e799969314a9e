package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
)

// Resolver maps a bearer token to the principal it was issued for.
type Resolver interface {
	Resolve(ctx context.Context, token string) (Principal, error)
}

// Claims are the token fields the service reads. Tokens are issued elsewhere.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTResolver verifies HS256 tokens signed with a shared secret.
type JWTResolver struct {
	secret []byte
	parser *jwt.Parser
}

var _ Resolver = (*JWTResolver)(nil)

func NewJWTResolver(secret string) (*JWTResolver, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &JWTResolver{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

func (r *JWTResolver) Resolve(_ context.Context, token string) (Principal, error) {
	claims := &Claims{}
	_, err := r.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return r.secret, nil
	})
	if err != nil {
		return Principal{}, apperr.Unauthorized("invalid or expired token")
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return Principal{}, apperr.Unauthorized("token subject is not a user id")
	}

	role := Role(claims.Role)
	if role == "" {
		role = RoleUser
	}
	if _, known := roleCapabilities[role]; !known {
		return Principal{}, apperr.Unauthorized("unknown role %q", claims.Role)
	}
	return Principal{ID: id, Role: role}, nil
}

// Sign issues a token for p. The service itself never issues tokens; this
// exists for local tooling and tests.
func (r *JWTResolver) Sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
