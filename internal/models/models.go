package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Categories a project may belong to.
var ProjectCategories = []string{
	"Commercial",
	"Residential",
	"Industrial",
	"Infrastructure",
	"Institutional",
	"Water",
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"not null"                 json:"username"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null"                 json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImageList is an ordered gallery of image URLs, stored as a JSON text column.
// It also accepts a comma-joined string on unmarshal, which older versions of
// the admin console submitted instead of an array.
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	var urls []string
	if err := json.Unmarshal(data, &urls); err == nil {
		*l = urls
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("images must be an array or a comma-joined string")
	}

	*l = SplitImages(joined)
	return nil
}

// SplitImages splits a comma-joined URL list, trimming entries and dropping
// empty ones.
func SplitImages(joined string) ImageList {
	parts := strings.Split(joined, ",")
	urls := make(ImageList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			urls = append(urls, p)
		}
	}
	return urls
}

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *ImageList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	default:
		return fmt.Errorf("cannot scan %T into ImageList", src)
	}
}

type Project struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title            string    `gorm:"not null"                 json:"title"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Category         string    `gorm:"index"                    json:"category"`
	Location         string    `json:"location"`
	Year             string    `json:"year"`
	Image            string    `json:"image"`
	Images           ImageList `gorm:"type:text"                json:"images"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Reconcile keeps the main image and the gallery consistent: a project with a
// main image always has a non-empty gallery, and a project with a gallery
// always has a main image.
func (p *Project) Reconcile() {
	if len(p.Images) == 0 && p.Image != "" {
		p.Images = ImageList{p.Image}
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
}

type Contact struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"not null"                 json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `gorm:"not null"                 json:"message"`
	Read      bool      `gorm:"default:false"            json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Service is a catalog entry. The catalog is fixed and never persisted.
type Service struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
