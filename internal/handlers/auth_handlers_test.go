package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Eliahhango/Civil-web/internal/models"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{DB: env.DB, Tokens: env.Tokens}

	payload := map[string]string{
		"username": "test_user",
		"email":    "user@example.com",
		"password": "password",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/auth/register", payload)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "user@example.com", resp.User.Email)
	require.Equal(t, models.RoleClient, resp.User.Role)
	require.NotEmpty(t, resp.User.ID)

	// The hash must never serialize.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	userJSON := raw["user"].(map[string]any)
	require.NotContains(t, userJSON, "password")
	require.NotContains(t, userJSON, "PasswordHash")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{DB: env.DB, Tokens: env.Tokens}

	payload := map[string]string{
		"username": "test_user",
		"email":    "user@example.com",
		"password": "password",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/auth/register", payload)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, c2 := env.doJSONRequest(http.MethodPost, "/api/auth/register", payload)
	err := h.Register(c2)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)

	// Same outcome when the account appeared between bind and insert: the
	// unique constraint, not a lookup, decides.
	env.createUser(t, "raced@example.com", "password", models.RoleClient)
	_, c3 := env.doJSONRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "other_user",
		"email":    "raced@example.com",
		"password": "password",
	})
	err = h.Register(c3)
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)

	var count int64
	env.DB.Model(&models.User{}).Where("email = ?", "raced@example.com").Count(&count)
	require.Equal(t, int64(1), count)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{DB: env.DB, Tokens: env.Tokens}

	user := env.createUser(t, "user@example.com", "password", models.RoleClient)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "user@example.com",
		"password": "password",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := env.Tokens.Parse(resp.Token)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprint(user.ID), claims.Subject)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, user.Role, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{DB: env.DB, Tokens: env.Tokens}

	env.createUser(t, "user@example.com", "password", models.RoleClient)

	_, c := env.doJSONRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "user@example.com",
		"password": "wrong_password",
	})
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{DB: env.DB, Tokens: env.Tokens}

	_, c := env.doJSONRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password",
	})
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.Equal(t, "Invalid credentials", he.Message)
}
