package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

// ctxPrincipal extracts the claims injected by the Auth middleware.
// A non-empty user id proves the middleware ran; routes that tolerate
// anonymous callers should use ctxActorID instead.
func ctxPrincipal(c echo.Context) (ports.Principal, error) {
	userID, _ := c.Get("userId").(string)
	if userID == "" {
		return ports.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roleName, _ := c.Get("roleName").(string)
	modules, _ := c.Get("moduleNames").([]string)

	return ports.Principal{
		UserID:   userID,
		RoleName: roleName,
		Modules:  modules,
	}, nil
}

// ctxActorID returns the authenticated user's id, or "" when the
// request is anonymous (self-service registration).
func ctxActorID(c echo.Context) string {
	userID, _ := c.Get("userId").(string)
	return userID
}
