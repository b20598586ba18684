package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	IsAdmin      bool      `gorm:"default:false"            json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

type Color struct {
	Name   string `json:"name"`
	Swatch string `json:"swatch"`
}

// ColorList is stored as a JSON text column. An empty or NULL cell
// decodes to an empty slice, never an error.
type ColorList []Color

func (l *ColorList) Scan(value any) error {
	return scanJSONList(value, l)
}

func (l ColorList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// ImageList is a sequence of image URLs, stored like ColorList.
type ImageList []string

func (l *ImageList) Scan(value any) error {
	return scanJSONList(value, l)
}

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func scanJSONList(value, dst any) error {
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Description string    `gorm:"type:text"                json:"description"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Rating      float64   `gorm:"default:0"                json:"rating"`
	ReviewCount int       `gorm:"default:0"                json:"review_count"`
	Colors      ColorList `gorm:"type:text"                json:"colors"`
	Images      ImageList `gorm:"type:text"                json:"images"`
	Category    string    `gorm:"index"                    json:"category"`
	AgeGroup    string    `gorm:"index"                    json:"age_group"`
	CreatedAt   time.Time `json:"created_at"`
}

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey"                          json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product;not null" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
