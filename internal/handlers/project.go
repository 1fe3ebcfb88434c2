package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Eliahhango/Civil-web/internal/logging"
	"github.com/Eliahhango/Civil-web/internal/models"
	"github.com/Eliahhango/Civil-web/internal/mykafka"
	"github.com/Eliahhango/Civil-web/internal/service/search"
)

type ProjectHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

func (h *ProjectHandler) publish(c echo.Context, event map[string]any) {
	l := logging.FromContext(c.Request().Context())
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "project_events", fmt.Sprint(event["projectID"]), event); err != nil {
		l.Error("kafka publish failed", "error", err)
	}
}

func (h *ProjectHandler) indexProject(c echo.Context, p *models.Project) {
	if h.ES == nil {
		return
	}
	l := logging.FromContext(c.Request().Context())
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexProject(ctx, h.ES, search.Index, p); err != nil {
		l.Error("search index failed", "projectID", p.ID, "error", err)
	}
}

func (h *ProjectHandler) deindexProject(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	l := logging.FromContext(c.Request().Context())
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.DeleteProject(ctx, h.ES, search.Index, id); err != nil {
		l.Error("search delete failed", "projectID", id, "error", err)
	}
}

func (h *ProjectHandler) GetProjects(c echo.Context) error {
	ctx := c.Request().Context()

	projects := []models.Project{}
	if err := h.DB.WithContext(ctx).Order("id ASC").Find(&projects).Error; err != nil {
		logging.FromContext(ctx).Error("list projects failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetProject(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	var project models.Project
	if err := h.DB.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		logging.FromContext(ctx).Error("get project failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, project)
}

type projectRequest struct {
	Title            *string           `json:"title"`
	Description      *string           `json:"description"`
	ShortDescription *string           `json:"shortDescription"`
	Category         *string           `json:"category"`
	Location         *string           `json:"location"`
	Year             *string           `json:"year"`
	Image            *string           `json:"image"`
	Images           *models.ImageList `json:"images"`
}

func (r *projectRequest) apply(p *models.Project) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.ShortDescription != nil {
		p.ShortDescription = *r.ShortDescription
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Location != nil {
		p.Location = *r.Location
	}
	if r.Year != nil {
		p.Year = *r.Year
	}
	if r.Image != nil {
		p.Image = *r.Image
	}
	if r.Images != nil {
		p.Images = *r.Images
	}
}

func (h *ProjectHandler) CreateProject(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "project_create")

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Title == nil || *req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title required")
	}

	var project models.Project
	req.apply(&project)
	project.Reconcile()

	if err := h.DB.WithContext(ctx).Create(&project).Error; err != nil {
		l.Error("create project failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{
		"type":      "project_created",
		"projectID": project.ID,
		"title":     project.Title,
	})
	h.indexProject(c, &project)

	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "project_update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var project models.Project
	if err := h.DB.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		l.Error("update project failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	req.apply(&project)
	project.Reconcile()

	if err := h.DB.WithContext(ctx).Save(&project).Error; err != nil {
		l.Error("update project failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{
		"type":      "project_updated",
		"projectID": project.ID,
		"title":     project.Title,
	})
	h.indexProject(c, &project)

	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "project_delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	if err := h.DB.WithContext(ctx).Delete(&models.Project{}, id).Error; err != nil {
		l.Error("delete project failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{
		"type":      "project_deleted",
		"projectID": uint(id),
	})
	h.deindexProject(c, uint(id))

	return c.JSON(http.StatusOK, echo.Map{"message": "Project deleted"})
}
