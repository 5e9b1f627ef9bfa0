package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"prestamos-api/internal/usecase/auth"
)

const ctxClaimsKey = "auth_claims"

// JWTAuth verifies the Bearer token and stashes the claims on the context.
func JWTAuth(uc *auth.Usecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
			}
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization must be a Bearer token"})
			}
			claims, err := uc.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(ctxClaimsKey, claims)
			return next(c)
		}
	}
}

// RequireRoles gates a route to the given roles. Must run after JWTAuth.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := OperatorClaims(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
		}
	}
}

func OperatorClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(ctxClaimsKey).(*auth.Claims)
	return claims
}

// OperatorID is zero when the route runs without authentication.
func OperatorID(c echo.Context) uint64 {
	if claims := OperatorClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}
