package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Eliahhango/Civil-web/internal/logging"
)

type UploadHandler struct {
	Dir string
}

// Upload writes the multipart "file" part into the upload directory under a
// timestamped name and returns the public URL.
func (h *UploadHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		l.Error("upload failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	defer src.Close()

	// Base name only, so the client cannot steer the write outside the
	// upload directory.
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fileHeader.Filename))
	dstPath := filepath.Join(h.Dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		l.Error("upload failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		l.Error("upload failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	l.Info("file uploaded", "filename", name, "size", fileHeader.Size)
	return c.JSON(http.StatusOK, echo.Map{
		"filename": name,
		"url":      "/uploads/" + name,
	})
}
