// Package auth turns bearer tokens into principals and answers capability checks.
package auth

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/apperr"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Capability string

// CapabilityViewAll allows listing records of every owner.
const CapabilityViewAll Capability = "view_all"

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {CapabilityViewAll},
	RoleUser:  nil,
}

// Principal is the authenticated caller.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

func (p Principal) Can(c Capability) bool {
	for _, granted := range roleCapabilities[p.Role] {
		if granted == c {
			return true
		}
	}
	return false
}

// Require returns a Forbidden error unless p holds the capability.
func Require(p Principal, c Capability) error {
	if !p.Can(c) {
		return apperr.Forbidden("missing capability %s", c)
	}
	return nil
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
