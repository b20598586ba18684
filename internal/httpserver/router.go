package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	mwauth "github.com/mvolkova/kids_shop/internal/middleware/auth"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	CatalogHandler  *CatalogHTTP
	WishlistHandler *WishlistHTTP
	JWTSecret       []byte
	RateLimitRPS    int
}

func Register(e *echo.Echo, d *Deps) {
	e.Use(
		ecM.Recover(),
		ecM.RequestID(),
		ecM.Secure(),
		ecM.CORS(),
	)
	if d.RateLimitRPS > 0 {
		e.Use(ecM.RateLimiter(ecM.NewRateLimiterMemoryStore(rate.Limit(d.RateLimitRPS))))
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	guard := mwauth.New(d.JWTSecret)

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.GET("/me", d.AuthHandler.Me, guard.RequireAuth)

	e.GET("/products", d.CatalogHandler.ListProducts)
	e.GET("/products/:idOrSlug", d.CatalogHandler.GetProduct)

	admin := e.Group("/admin", guard.RequireAdmin)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PUT("/products/:id", d.CatalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)
	admin.POST("/seed-demo", d.CatalogHandler.SeedDemo)

	wishlist := e.Group("/wishlist", guard.RequireAuth)
	wishlist.GET("", d.WishlistHandler.List)
	wishlist.POST("", d.WishlistHandler.Add)
	wishlist.DELETE("/:productID", d.WishlistHandler.Remove)
}
