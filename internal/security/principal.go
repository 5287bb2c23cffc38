package security

import (
	"context"

	"skillswap-backend/internal/domain"
)

// Principal is the identity attached to a request: Anonymous, UserPrincipal
// or AdminPrincipal.
type Principal interface {
	principal()
}

type Anonymous struct{}

type UserPrincipal struct {
	ID   int32
	Role domain.UserRole
}

type AdminPrincipal struct {
	ID        int32
	Privilege domain.AdminPrivilege
}

func (Anonymous) principal()      {}
func (UserPrincipal) principal()  {}
func (AdminPrincipal) principal() {}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns Anonymous when nothing was attached.
func PrincipalFrom(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey{}).(Principal); ok && p != nil {
		return p
	}
	return Anonymous{}
}

func UserFrom(ctx context.Context) (UserPrincipal, bool) {
	u, ok := PrincipalFrom(ctx).(UserPrincipal)
	return u, ok
}

func AdminFrom(ctx context.Context) (AdminPrincipal, bool) {
	a, ok := PrincipalFrom(ctx).(AdminPrincipal)
	return a, ok
}
