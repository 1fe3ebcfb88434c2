package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Eliahhango/Civil-web/internal/hash"
	"github.com/Eliahhango/Civil-web/internal/models"
	"github.com/Eliahhango/Civil-web/internal/service/token"
)

var testSecret = []byte("test-secret")

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.Contact{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

type testEnv struct {
	E      *echo.Echo
	DB     *gorm.DB
	Tokens *token.Service
}

func newTestEnv(t *testing.T) *testEnv {
	return &testEnv{
		E:      echo.New(),
		DB:     initTestDB(t),
		Tokens: &token.Service{Secret: testSecret},
	}
}

func (env *testEnv) doJSONRequest(method, path string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	var body *bytes.Reader
	if payload != nil {
		bodyBytes, _ := json.Marshal(payload)
		body = bytes.NewReader(bodyBytes)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createUser(t *testing.T, email, password, role string) *models.User {
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     "test_user",
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := env.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
