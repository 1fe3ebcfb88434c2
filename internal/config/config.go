package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Eliahhango/Civil-web/internal/models"
)

type Config struct {
	HTTP_ADDR   string
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	JWT_SECRET string

	KAFKA_ADDRESS string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	UPLOAD_DIR string

	SMTP_HOST         string
	SMTP_PORT         string
	SMTP_USER         string
	SMTP_PASSWORD     string
	CONTACT_RECIPIENT string

	LOG_LEVEL string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:         getenvDefault("HTTP_ADDR", ":8080"),
		DB_HOST:           os.Getenv("DB_HOST"),
		DB_PORT:           os.Getenv("DB_PORT"),
		DB_USER:           os.Getenv("DB_USER"),
		DB_PASSWORD:       os.Getenv("DB_PASSWORD"),
		DB_NAME:           os.Getenv("DB_NAME"),
		JWT_SECRET:        os.Getenv("JWT_SECRET"),
		KAFKA_ADDRESS:     os.Getenv("KAFKA_ADDRESS"),
		ES_URL:            os.Getenv("ES_URL"),
		ES_USER:           os.Getenv("ES_USER"),
		ES_PASSWORD:       os.Getenv("ES_PASSWORD"),
		UPLOAD_DIR:        getenvDefault("UPLOAD_DIR", "uploads"),
		SMTP_HOST:         os.Getenv("SMTP_HOST"),
		SMTP_PORT:         getenvDefault("SMTP_PORT", "587"),
		SMTP_USER:         os.Getenv("SMTP_USER"),
		SMTP_PASSWORD:     os.Getenv("SMTP_PASSWORD"),
		CONTACT_RECIPIENT: getenvDefault("CONTACT_RECIPIENT", "support@nexusengineering.co.tz"),
		LOG_LEVEL:         getenvDefault("LOG_LEVEL", "info"),
	}

	if config.JWT_SECRET == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return config, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.Contact{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
