package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/domain"
)

const principalKey = "auth_principal"

type principalCtxKey struct{}

// WithPrincipal returns a copy of ctx carrying the verified principal.
func WithPrincipal(ctx context.Context, principal *domain.Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, principal)
}

// PrincipalFromContext retrieves the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(principalCtxKey{}).(*domain.Principal)
	return principal, ok && principal != nil
}

// PrincipalFromCtx retrieves the authenticated principal from fiber locals.
func PrincipalFromCtx(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
