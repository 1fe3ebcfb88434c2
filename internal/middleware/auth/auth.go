package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Eliahhango/Civil-web/internal/models"
	"github.com/Eliahhango/Civil-web/internal/service/token"
)

// Middleware authenticates Bearer tokens and enforces the role a route
// declares in the policy table.
type Middleware struct {
	Tokens *token.Service
}

// Require rejects requests without a valid token (401) and requests whose
// role is below the required one (403). Claims are stored on the context for
// the handler.
func (m *Middleware) Require(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
			}

			claims, err := m.Tokens.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			if role == models.RoleAdmin && claims.Role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			setUserContext(c, claims)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	return raw, raw != ""
}

func setUserContext(c echo.Context, claims *token.Claims) {
	c.Set("userID", claims.Subject)
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)
}
