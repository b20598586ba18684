package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mvolkova/kids_shop/internal/events"
	"github.com/mvolkova/kids_shop/internal/logging"
	"github.com/mvolkova/kids_shop/internal/models"
	"github.com/mvolkova/kids_shop/internal/repo"
	"github.com/mvolkova/kids_shop/internal/search"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Search   *search.Client
}

// ListProducts serves the filtered catalog. When a text query is
// present and the search backend is up, it answers from the index;
// otherwise the parameterized SQL filter does the work.
func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter) ([]models.Product, error) {
	if f.Query != "" && s.Search.Enabled() {
		items, err := s.Search.SearchProducts(ctx, f.Query, f.Category, f.AgeGroup, f.Sort)
		if err == nil {
			return items, nil
		}
		logging.FromContext(ctx).Warn("search backend failed, falling back to sql", "error", err)
	}
	return s.Repo.ListProducts(ctx, f)
}

func (s *CatalogService) GetProduct(ctx context.Context, idOrSlug string) (*models.Product, error) {
	return s.Repo.ProductByIDOrSlug(ctx, idOrSlug)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.Name == "" || p.Slug == "" {
		return ErrValidation
	}
	if p.Price < 0 {
		return ErrValidation
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return err
	}
	s.index(ctx, p)
	s.publish(ctx, "product_created", p.ID, p.Name)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, apply func(*models.Product)) (*models.Product, error) {
	p, err := s.Repo.UpdateProduct(ctx, id, func(p *models.Product) error {
		apply(p)
		if p.Name == "" || p.Slug == "" || p.Price < 0 {
			return ErrValidation
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.index(ctx, p)
	s.publish(ctx, "product_updated", p.ID, p.Name)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	if err := s.Search.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("search deindex failed", "product_id", id, "error", err)
	}
	s.publish(ctx, "product_deleted", id, "")
	return nil
}

func (s *CatalogService) index(ctx context.Context, p *models.Product) {
	if err := s.Search.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search index failed", "product_id", p.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, eventType string, productID uint, name string) {
	event := map[string]any{
		"type":       eventType,
		"product_id": productID,
	}
	if name != "" {
		event["name"] = name
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "product_events", fmt.Sprint(productID), event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "type", eventType, "error", err)
	}
}
