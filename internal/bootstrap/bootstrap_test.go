package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Eliahhango/Civil-web/internal/hash"
	"github.com/Eliahhango/Civil-web/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Contact{}))
	return db
}

func TestEnsureDefaults(t *testing.T) {
	db := initTestDB(t)
	dir := filepath.Join(t.TempDir(), "uploads")

	require.NoError(t, EnsureDefaults(context.Background(), db, dir))

	var admin models.User
	require.NoError(t, db.Where("email = ?", AdminEmail).First(&admin).Error)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.True(t, hash.CheckPassword(admin.PasswordHash, adminPassword))

	var projects []models.Project
	require.NoError(t, db.Find(&projects).Error)
	require.NotEmpty(t, projects)
	for _, p := range projects {
		require.NotEmpty(t, p.Image)
		require.NotEmpty(t, p.Images)
		require.Equal(t, p.Images[0], p.Image)
	}
}

func TestEnsureDefaultsIdempotent(t *testing.T) {
	db := initTestDB(t)
	dir := filepath.Join(t.TempDir(), "uploads")

	require.NoError(t, EnsureDefaults(context.Background(), db, dir))

	var projectCount, userCount int64
	db.Model(&models.Project{}).Count(&projectCount)
	db.Model(&models.User{}).Count(&userCount)

	require.NoError(t, EnsureDefaults(context.Background(), db, dir))

	var projectCount2, userCount2 int64
	db.Model(&models.Project{}).Count(&projectCount2)
	db.Model(&models.User{}).Count(&userCount2)
	require.Equal(t, projectCount, projectCount2)
	require.Equal(t, userCount, userCount2)
}

func TestEnsureDefaultsKeepsExistingProjects(t *testing.T) {
	db := initTestDB(t)

	custom := models.Project{Title: "Existing", Image: "http://x", Images: models.ImageList{"http://x"}}
	require.NoError(t, db.Create(&custom).Error)

	require.NoError(t, EnsureDefaults(context.Background(), db, t.TempDir()))

	var count int64
	db.Model(&models.Project{}).Count(&count)
	require.Equal(t, int64(1), count)
}
