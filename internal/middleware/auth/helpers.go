package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvolkova/kids_shop/internal/tokens"
)

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	if id, err := claims.UserID(); err == nil {
		c.Set("user_id", id)
	}
	c.Set("email", claims.Email)
	c.Set("is_admin", claims.IsAdmin)
}

// UserID reads the caller's id placed by RequireAuth. Handlers behind
// the guard can rely on it; anything else gets 401.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get("user_id").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return id, nil
}
