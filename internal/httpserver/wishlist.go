package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mvolkova/kids_shop/internal/logging"
	mwauth "github.com/mvolkova/kids_shop/internal/middleware/auth"
	"github.com/mvolkova/kids_shop/internal/service"
	"github.com/mvolkova/kids_shop/internal/transport"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.list")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.Svc.List(ctx, userID)
	if err != nil {
		l.Error("wishlist_list_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load wishlist")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *WishlistHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.WishlistAddRequest
	if err := c.Bind(&req); err != nil || req.ProductID == 0 {
		l.Warn("wishlist_add_failed", "status", 400, "reason", "invalid body")
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	if err := h.Svc.Add(ctx, userID, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("wishlist_add_failed", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("wishlist_add_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add to wishlist")
	}

	l.Info("wishlist_add_success", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return err
	}

	productID, err := strconv.Atoi(c.Param("productID"))
	if err != nil {
		l.Warn("wishlist_remove_failed", "status", 400, "reason", "product id not numeric")
		return echo.NewHTTPError(http.StatusBadRequest, "product id must be numeric")
	}

	if err := h.Svc.Remove(ctx, userID, uint(productID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("wishlist_remove_failed", "status", 404, "reason", "not in wishlist")
			return echo.NewHTTPError(http.StatusNotFound, "product not in wishlist")
		}
		l.Error("wishlist_remove_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove from wishlist")
	}

	l.Info("wishlist_remove_success", "product_id", productID)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}
