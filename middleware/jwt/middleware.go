package jwt

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	jwtservice "github.com/mynews-app/backend/services/jwt"
)

const (
	ClaimsContextKey = "jwt_claims"
	UserIDContextKey = "user_id"
)

// Middleware rejects requests without a valid bearer assertion and
// stores the claims on the request context for downstream handlers.
func Middleware(jwtSvc *jwtservice.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header"})
			}

			claims, err := jwtSvc.ValidateToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(ClaimsContextKey, claims)
			c.Set(UserIDContextKey, claims.UserID)

			return next(c)
		}
	}
}

// UserID returns the authenticated user id set by Middleware.
func UserID(c echo.Context) string {
	if id, ok := c.Get(UserIDContextKey).(string); ok {
		return id
	}
	return ""
}

// Claims returns the validated claims set by Middleware.
func Claims(c echo.Context) *jwtservice.Claims {
	if claims, ok := c.Get(ClaimsContextKey).(*jwtservice.Claims); ok {
		return claims
	}
	return nil
}
