package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/e-garderoba/backend/internal/api/middleware"
	"github.com/e-garderoba/backend/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware
// and performs a fast-fail check before any service call: a zero id or
// empty role means the middleware did not run or the token was garbled.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	id, _ := c.Get(middleware.CtxUserID).(int64)
	role, _ := c.Get(middleware.CtxRole).(string)
	if id == 0 || role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get(middleware.CtxEmail).(string)
	return domain.Principal{ID: id, Email: email, Role: domain.Role(role)}, nil
}
