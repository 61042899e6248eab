// Package authn provides bearer-token authentication middleware.
package authn

import (
	"context"
	"strings"

	"github.com/grcledger/grcledger/pkg/auth"
	"github.com/grcledger/grcledger/pkg/controller"
	"github.com/grcledger/grcledger/pkg/middleware"
	"github.com/grcledger/grcledger/pkg/server/router"
)

// Validator checks a bearer token and returns its claims.
// *auth.TokenIssuer satisfies it.
type Validator interface {
	Validate(token string) (*auth.Claims, error)
}

// RequireToken creates middleware that rejects requests without a valid
// Authorization: Bearer token. Validated claims land in the request context
// under middleware.UserKey.
func RequireToken(v Validator) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			header := c.Request().Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return controller.Error(c, controller.NewUnauthorizedError("missing bearer token"))
			}

			claims, err := v.Validate(token)
			if err != nil {
				return controller.Error(c, controller.NewUnauthorizedError("invalid bearer token"))
			}

			c.Set(string(middleware.UserKey), claims)
			ctx := context.WithValue(c.Request().Context(), middleware.UserKey, claims)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetClaims extracts the authenticated user's claims from a context.
// Returns nil when the request was not authenticated.
func GetClaims(ctx context.Context) *auth.Claims {
	if ctx == nil {
		return nil
	}
	if claims, ok := ctx.Value(middleware.UserKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
