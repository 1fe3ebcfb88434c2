package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Eliahhango/Civil-web/internal/handlers"
	"github.com/Eliahhango/Civil-web/internal/middleware/auth"
	"github.com/Eliahhango/Civil-web/internal/models"
)

type Deps struct {
	DB             *gorm.DB
	Auth           *auth.Middleware
	AuthHandler    *handlers.AuthHandler
	ProjectHandler *handlers.ProjectHandler
	ContactHandler *handlers.ContactHandler
	UserHandler    *handlers.UserHandler
	ServiceHandler *handlers.ServiceHandler
	UploadHandler  *handlers.UploadHandler
	SearchHandler  *handlers.SearchHandler
	UploadDir      string
}

// route pairs an endpoint with the role it requires: "" is public,
// RoleClient any valid token, RoleAdmin admin only. Authorization lives in
// this table, not in the handlers.
type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	role    string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Static("/uploads", d.UploadDir)

	table := []route{
		{http.MethodPost, "/auth/login", d.AuthHandler.Login, ""},
		{http.MethodPost, "/auth/register", d.AuthHandler.Register, ""},

		{http.MethodGet, "/projects", d.ProjectHandler.GetProjects, ""},
		{http.MethodGet, "/projects/search", d.SearchHandler.Search, ""},
		{http.MethodGet, "/projects/:id", d.ProjectHandler.GetProject, ""},
		{http.MethodPost, "/projects", d.ProjectHandler.CreateProject, models.RoleAdmin},
		{http.MethodPut, "/projects/:id", d.ProjectHandler.UpdateProject, models.RoleAdmin},
		{http.MethodDelete, "/projects/:id", d.ProjectHandler.DeleteProject, models.RoleAdmin},

		{http.MethodPost, "/contact", d.ContactHandler.Submit, ""},
		{http.MethodGet, "/contacts", d.ContactHandler.List, models.RoleAdmin},
		{http.MethodPut, "/contacts/:id", d.ContactHandler.Update, models.RoleAdmin},
		{http.MethodDelete, "/contacts/:id", d.ContactHandler.Delete, models.RoleAdmin},

		{http.MethodGet, "/users", d.UserHandler.List, models.RoleAdmin},
		{http.MethodGet, "/services", d.ServiceHandler.List, ""},

		{http.MethodPost, "/upload", d.UploadHandler.Upload, models.RoleAdmin},
	}

	api := e.Group("/api")
	for _, r := range table {
		if r.role == "" {
			api.Add(r.method, r.path, r.handler)
			continue
		}
		api.Add(r.method, r.path, r.handler, d.Auth.Require(r.role))
	}
}
