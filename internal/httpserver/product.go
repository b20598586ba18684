package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mvolkova/kids_shop/internal/logging"
	"github.com/mvolkova/kids_shop/internal/models"
	"github.com/mvolkova/kids_shop/internal/repo"
	"github.com/mvolkova/kids_shop/internal/service"
	"github.com/mvolkova/kids_shop/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products")

	filter := repo.ProductFilter{
		Category: c.QueryParam("category"),
		AgeGroup: c.QueryParam("age_group"),
		Query:    c.QueryParam("q"),
		Sort:     c.QueryParam("sort"),
	}

	items, err := h.Svc.ListProducts(ctx, filter)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	product, err := h.Svc.GetProduct(ctx, c.Param("idOrSlug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "unknown id or slug")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product := productFromRequest(&req)
	if err := h.Svc.CreateProduct(ctx, product); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_product_failed", "status", 400, "reason", "validation")
			return echo.NewHTTPError(http.StatusBadRequest, "name and slug are required, price must not be negative")
		case errors.Is(err, repo.ErrSlugTaken):
			l.Warn("create_product_failed", "status", 400, "reason", "slug taken")
			return echo.NewHTTPError(http.StatusBadRequest, "slug already taken")
		default:
			l.Error("create_product_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
		}
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, transport.IDResponse{ID: product.ID})
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "id not numeric")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be numeric")
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(ctx, uint(id), func(p *models.Product) {
		p.Name = req.Name
		p.Slug = req.Slug
		p.Description = req.Description
		p.Price = req.Price
		p.Rating = req.Rating
		p.ReviewCount = req.ReviewCount
		p.Colors = req.Colors
		p.Images = req.Images
		p.Category = req.Category
		p.AgeGroup = req.AgeGroup
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("update_product_failed", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_product_failed", "status", 400, "reason", "validation")
			return echo.NewHTTPError(http.StatusBadRequest, "name and slug are required, price must not be negative")
		case errors.Is(err, repo.ErrSlugTaken):
			l.Warn("update_product_failed", "status", 400, "reason", "slug taken")
			return echo.NewHTTPError(http.StatusBadRequest, "slug already taken")
		default:
			l.Error("update_product_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	l.Info("update_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, transport.IDResponse{ID: product.ID})
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_failed", "status", 400, "reason", "id not numeric")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be numeric")
	}

	if err := h.Svc.DeleteProduct(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_product_failed", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("delete_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func (h *CatalogHTTP) SeedDemo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.seed_demo")

	inserted, err := h.Svc.SeedDemo(ctx)
	if err != nil {
		l.Error("seed_demo_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "seed failed")
	}

	l.Info("seed_demo_success", "inserted", inserted)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func productFromRequest(req *transport.ProductRequest) *models.Product {
	return &models.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Rating:      req.Rating,
		ReviewCount: req.ReviewCount,
		Colors:      req.Colors,
		Images:      req.Images,
		Category:    req.Category,
		AgeGroup:    req.AgeGroup,
	}
}
