package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Eliahhango/Civil-web/internal/logging"
	"github.com/Eliahhango/Civil-web/internal/mailer"
	"github.com/Eliahhango/Civil-web/internal/models"
	"github.com/Eliahhango/Civil-web/internal/mykafka"
)

type ContactHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	Mailer   *mailer.Mailer
}

// Submit persists the form, then notifies out of band. The response depends
// only on the database write.
func (h *ContactHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact_submit")

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and message required")
	}

	contact := models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := h.DB.WithContext(ctx).Create(&contact).Error; err != nil {
		l.Error("contact submit failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	go h.notify(l.With("contactID", contact.ID), contact)

	return c.JSON(http.StatusOK, echo.Map{"message": "Contact form submitted successfully"})
}

// notify runs detached from the request. Failures are logged, never surfaced.
func (h *ContactHandler) notify(l *slog.Logger, contact models.Contact) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.Mailer.NotifyContact(&contact); err != nil {
		l.Error("contact mail failed", "error", err)
	}

	event := map[string]any{
		"type":      "contact_submitted",
		"contactID": contact.ID,
		"name":      contact.Name,
		"email":     contact.Email,
	}
	if err := h.Producer.PublishEvent(ctx, "contact_events", fmt.Sprint(contact.ID), event); err != nil {
		l.Error("kafka publish failed", "error", err)
	}
}

func (h *ContactHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	contacts := []models.Contact{}
	if err := h.DB.WithContext(ctx).Order("created_at DESC").Find(&contacts).Error; err != nil {
		logging.FromContext(ctx).Error("list contacts failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, contacts)
}

// Update toggles the read flag. Other fields are immutable once submitted.
func (h *ContactHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact_update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
	}

	var req struct {
		Read bool `json:"read"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var contact models.Contact
	if err := h.DB.WithContext(ctx).First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
		}
		l.Error("update contact failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if err := h.DB.WithContext(ctx).Model(&contact).Update("read", req.Read).Error; err != nil {
		l.Error("update contact failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact_delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
	}

	if err := h.DB.WithContext(ctx).Delete(&models.Contact{}, id).Error; err != nil {
		l.Error("delete contact failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Contact deleted"})
}
