package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/e-garderoba/backend/internal/api/metrics"
	"github.com/e-garderoba/backend/internal/core/domain"
	"github.com/e-garderoba/backend/internal/core/ports"
)

// UserHandler handles HTTP requests for account management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /api/v1/users.
//
// @Summary      Create a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), actor, ports.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      domain.Role(req.Role),
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(view.Role)).Inc()
	return c.JSON(http.StatusCreated, dataResponse{Data: *view})
}

// List handles GET /api/v1/users.
//
// @Summary      List user accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search       query     string  false  "Substring over first name, last name or email"
// @Param        firstName    query     string  false  "First name substring"
// @Param        lastName     query     string  false  "Last name substring"
// @Param        email        query     string  false  "Email substring"
// @Param        role         query     string  false  "Exact role"  Enums(tancerz, kierownik, administrator)
// @Param        createdFrom  query     string  false  "Inclusive creation date lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param        createdTo    query     string  false  "Inclusive creation date upper bound"
// @Param        sort         query     string  false  "Sort key"  Enums(first-name, last-name, email, created-at)
// @Param        order        query     string  false  "asc or desc"
// @Param        offset       query     int     false  "Rows to skip (default 0)"
// @Param        limit        query     int     false  "Page size (default 20)"
// @Success      200  {object}  listResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	filter := ports.ListUsersFilter{
		Search:    q.Search,
		FirstName: q.FirstName,
		LastName:  q.LastName,
		Email:     q.Email,
		Role:      domain.Role(q.Role),
		Sort:      q.Sort,
		Order:     q.Order,
		Offset:    q.Offset,
		Limit:     q.Limit,
	}

	var fieldErrs []FieldError
	if filter.CreatedFrom, err = parseDateBound(q.CreatedFrom); err != nil {
		fieldErrs = append(fieldErrs, NewFieldError("createdFrom", CodeInvalidFormat))
	}
	if filter.CreatedTo, err = parseDateBound(q.CreatedTo); err != nil {
		fieldErrs = append(fieldErrs, NewFieldError("createdTo", CodeInvalidFormat))
	}
	if len(fieldErrs) > 0 {
		return &ValidationError{Fields: fieldErrs}
	}

	result, err := h.service.List(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse{
		Data: result.Users,
		Meta: listMeta{Total: result.Total},
	})
}

// Get handles GET /api/v1/users/:id.
//
// Read access is intentionally open to every authenticated role, even
// though listing is manager-gated. Long-standing API behaviour.
//
// @Summary      Get a user account by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: *view})
}

// Update handles PATCH /api/v1/users/:id.
//
// @Summary      Update a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	view, err := h.service.Update(c.Request().Context(), actor, id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: *view})
}

// Delete handles DELETE /api/v1/users/:id.
//
// @Summary      Delete a user account
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}

// parseDateBound accepts an RFC 3339 timestamp or a bare date. An empty
// string means the bound is absent.
func parseDateBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
