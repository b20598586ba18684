package service

import (
	"context"

	"github.com/mvolkova/kids_shop/internal/models"
	"github.com/mvolkova/kids_shop/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

func (s *WishlistService) List(ctx context.Context, userID uint) ([]models.Product, error) {
	return s.Repo.WishlistProducts(ctx, userID)
}

// Add verifies the product exists before linking it, so a wishlist
// can never reference a row that is not in the catalog.
func (s *WishlistService) Add(ctx context.Context, userID, productID uint) error {
	if _, err := s.Repo.ProductByID(ctx, productID); err != nil {
		return err
	}
	return s.Repo.AddToWishlist(ctx, userID, productID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID uint) error {
	return s.Repo.RemoveFromWishlist(ctx, userID, productID)
}
