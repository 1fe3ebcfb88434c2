package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Eliahhango/Civil-web/internal/models"
)

type ServiceHandler struct{}

// Catalog is the fixed set of services the company offers. It mirrors the
// published site copy and is not persisted.
func Catalog() []models.Service {
	return []models.Service{
		{
			ID:          1,
			Title:       "Structural Design",
			Description: "Advanced structural engineering solutions for residential, commercial, industrial, and institutional buildings.",
			Icon:        "building",
		},
		{
			ID:          2,
			Title:       "Water Infrastructure",
			Description: "Complete water supply systems, wastewater treatment, and sustainable water resource management.",
			Icon:        "water",
		},
		{
			ID:          3,
			Title:       "Bridge Engineering",
			Description: "Comprehensive bridge design, analysis, inspection, and rehabilitation services.",
			Icon:        "bridge",
		},
		{
			ID:          4,
			Title:       "Transportation Engineering",
			Description: "Highway design, traffic engineering, and comprehensive road infrastructure solutions.",
			Icon:        "road",
		},
		{
			ID:          5,
			Title:       "Tender Management",
			Description: "Professional tender documentation, evaluation, and procurement management services.",
			Icon:        "document",
		},
		{
			ID:          6,
			Title:       "Project Management",
			Description: "End-to-end project administration, quality control, and construction supervision.",
			Icon:        "chart",
		},
	}
}

func (h *ServiceHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, Catalog())
}
