package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/Eliahhango/Civil-web/internal/hash"
	"github.com/Eliahhango/Civil-web/internal/logging"
	"github.com/Eliahhango/Civil-web/internal/models"
)

const (
	AdminEmail    = "admin@nexusengineering.co.tz"
	adminUsername = "admin"
	adminPassword = "admin123"
)

func defaultProjects() []models.Project {
	return []models.Project{
		{
			Title:            "Central Business District Tower",
			Description:      "Design and engineering of a 25-story commercial complex featuring sustainable building practices and modern structural systems.",
			ShortDescription: "A 25-story commercial complex with sustainable building practices.",
			Image:            "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?w=1200&h=800&fit=crop",
			Images:           models.ImageList{"https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?w=1200&h=800&fit=crop"},
			Category:         "Commercial",
			Location:         "Dar es Salaam",
			Year:             "2023",
		},
		{
			Title:            "Kigamboni Water Supply Network",
			Description:      "Complete water supply scheme covering intake, treatment and a 40km distribution network serving over 100,000 residents.",
			ShortDescription: "Water supply scheme serving over 100,000 residents.",
			Image:            "https://images.unsplash.com/photo-1504328345606-18bbc8c9d7d1?w=1200&h=800&fit=crop",
			Images:           models.ImageList{"https://images.unsplash.com/photo-1504328345606-18bbc8c9d7d1?w=1200&h=800&fit=crop"},
			Category:         "Water",
			Location:         "Kigamboni",
			Year:             "2022",
		},
		{
			Title:            "Morogoro Highway Interchange",
			Description:      "Structural design and construction supervision of a three-level highway interchange easing congestion on the Morogoro corridor.",
			ShortDescription: "Three-level highway interchange on the Morogoro corridor.",
			Image:            "https://images.unsplash.com/photo-1545558014-8692077e9b5c?w=1200&h=800&fit=crop",
			Images:           models.ImageList{"https://images.unsplash.com/photo-1545558014-8692077e9b5c?w=1200&h=800&fit=crop"},
			Category:         "Infrastructure",
			Location:         "Morogoro",
			Year:             "2024",
		},
	}
}

// EnsureDefaults seeds the well-known admin account and the default project
// catalog, and creates the upload directory. Safe to run on every start.
func EnsureDefaults(ctx context.Context, db *gorm.DB, uploadDir string) error {
	l := logging.FromContext(ctx).With("svc", "bootstrap")

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return fmt.Errorf("bootstrap: create upload dir: %w", err)
	}

	var admin models.User
	err := db.WithContext(ctx).Where("email = ?", AdminEmail).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pwHash, err := hash.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("bootstrap: hash admin password: %w", err)
		}
		admin = models.User{
			Username:     adminUsername,
			Email:        AdminEmail,
			PasswordHash: pwHash,
			Role:         models.RoleAdmin,
		}
		if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
			return fmt.Errorf("bootstrap: create admin: %w", err)
		}
		l.Info("admin account created", "email", AdminEmail)
	} else if err != nil {
		return fmt.Errorf("bootstrap: lookup admin: %w", err)
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error; err != nil {
		return fmt.Errorf("bootstrap: count projects: %w", err)
	}
	if count == 0 {
		projects := defaultProjects()
		if err := db.WithContext(ctx).Create(&projects).Error; err != nil {
			return fmt.Errorf("bootstrap: seed projects: %w", err)
		}
		l.Info("default project catalog seeded", "count", len(projects))
	}

	return nil
}
