package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/e-garderoba/backend/internal/core/domain"
)

// RequireRole enforces a minimum role: the principal's role must rank at
// least as high as min in the role priority order. Unknown roles rank
// below everything and are always rejected.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if !domain.AtLeast(domain.Role(role), min) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "no permission"})
			}
			return next(c)
		}
	}
}
