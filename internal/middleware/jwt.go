package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/moatezLita/salesGPT/internal/auth"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	ParseToken(token string) (*authpkg.Claims, error)
}

// JWT validates bearer tokens and stores caller metadata in the request context.
func JWT(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				return unauthorized(c, "invalid authorization header")
			}

			claims, err := parser.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return unauthorized(c, "invalid token")
			}

			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyUserEmail, claims.Email)

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"status": "error", "detail": detail})
}
