package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Eliahhango/Civil-web/internal/models"
	"github.com/Eliahhango/Civil-web/internal/service/token"
)

var testSecret = []byte("test-secret")

func issueFor(t *testing.T, role string) string {
	svc := &token.Service{Secret: testSecret}
	raw, err := svc.Issue(&models.User{ID: 1, Email: "user@example.com", Role: role})
	require.NoError(t, err)
	return raw
}

func call(t *testing.T, mw echo.MiddlewareFunc, authHeader string) error {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return handler(c)
}

func TestRequireMissingToken(t *testing.T) {
	m := &Middleware{Tokens: &token.Service{Secret: testSecret}}

	err := call(t, m.Require(models.RoleAdmin), "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireMalformedHeader(t *testing.T) {
	m := &Middleware{Tokens: &token.Service{Secret: testSecret}}

	err := call(t, m.Require(models.RoleAdmin), "Token abcdef")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireBadSignature(t *testing.T) {
	m := &Middleware{Tokens: &token.Service{Secret: testSecret}}

	other := &token.Service{Secret: []byte("other-secret")}
	raw, err := other.Issue(&models.User{ID: 1, Email: "user@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	mwErr := call(t, m.Require(models.RoleAdmin), "Bearer "+raw)
	he, ok := mwErr.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireExpiredToken(t *testing.T) {
	m := &Middleware{Tokens: &token.Service{Secret: testSecret}}

	claims := token.Claims{
		Email: "user@example.com",
		Role:  models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	mwErr := call(t, m.Require(models.RoleAdmin), "Bearer "+raw)
	he, ok := mwErr.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireForbiddenForClientRole(t *testing.T) {
	m := &Middleware{Tokens: &token.Service{Secret: testSecret}}

	err := call(t, m.Require(models.RoleAdmin), "Bearer "+issueFor(t, models.RoleClient))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireAdminAllowed(t *testing.T) {
	m := &Middleware{Tokens: &token.Service{Secret: testSecret}}

	err := call(t, m.Require(models.RoleAdmin), "Bearer "+issueFor(t, models.RoleAdmin))
	require.NoError(t, err)
}

func TestRequireClientAllowsAnyValidToken(t *testing.T) {
	m := &Middleware{Tokens: &token.Service{Secret: testSecret}}

	err := call(t, m.Require(models.RoleClient), "Bearer "+issueFor(t, models.RoleClient))
	require.NoError(t, err)
}
