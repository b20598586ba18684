package transport

import "github.com/mvolkova/kids_shop/internal/models"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MeResponse struct {
	User *models.User `json:"user"`
}

type ProductRequest struct {
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"review_count"`
	Colors      models.ColorList `json:"colors"`
	Images      models.ImageList `json:"images"`
	Category    string           `json:"category"`
	AgeGroup    string           `json:"age_group"`
}

type WishlistAddRequest struct {
	ProductID uint `json:"product_id"`
}

type IDResponse struct {
	ID uint `json:"id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
