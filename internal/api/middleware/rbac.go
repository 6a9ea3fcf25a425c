package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

// RequireModule gates a route on a module grant embedded in the session
// token. Super-admins bypass the check.
func RequireModule(module string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleName, _ := c.Get("roleName").(string)
			if roleName == domain.RoleNameSuperAdmin {
				return next(c)
			}

			modules, _ := c.Get("moduleNames").([]string)
			for _, m := range modules {
				if m == module {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, map[string]any{
				"success": false,
				"message": "You are not permitted!",
				"data":    nil,
			})
		}
	}
}
