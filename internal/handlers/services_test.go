package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Eliahhango/Civil-web/internal/models"
)

func TestListServices(t *testing.T) {
	env := newTestEnv(t)
	h := &ServiceHandler{}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/services", nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var services []models.Service
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &services))
	require.Len(t, services, 6)
	require.Equal(t, "Structural Design", services[0].Title)
	require.Equal(t, "Project Management", services[5].Title)
	for i, s := range services {
		require.Equal(t, i+1, s.ID)
		require.NotEmpty(t, s.Description)
		require.NotEmpty(t, s.Icon)
	}
}
