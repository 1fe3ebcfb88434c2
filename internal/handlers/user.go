package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Eliahhango/Civil-web/internal/logging"
	"github.com/Eliahhango/Civil-web/internal/models"
)

type UserHandler struct {
	DB *gorm.DB
}

// List returns every registered user. Password hashes never serialize.
func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	users := []models.User{}
	if err := h.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		logging.FromContext(ctx).Error("list users failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, users)
}
