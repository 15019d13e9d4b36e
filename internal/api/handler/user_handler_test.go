package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/e-garderoba/backend/internal/api/middleware"
	"github.com/e-garderoba/backend/internal/core/domain"
	"github.com/e-garderoba/backend/internal/core/ports"
)

type stubUserService struct {
	createFn func(ctx context.Context, actor domain.Principal, in ports.CreateUserInput) (*ports.UserView, error)
	listFn   func(ctx context.Context, actor domain.Principal, filter ports.ListUsersFilter) (*ports.ListUsersResult, error)
	getFn    func(ctx context.Context, id int64) (*ports.UserView, error)
	updateFn func(ctx context.Context, actor domain.Principal, id int64, in ports.UpdateUserInput) (*ports.UserView, error)
	deleteFn func(ctx context.Context, actor domain.Principal, id int64) error
}

func (s *stubUserService) Create(ctx context.Context, actor domain.Principal, in ports.CreateUserInput) (*ports.UserView, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubUserService) List(ctx context.Context, actor domain.Principal, filter ports.ListUsersFilter) (*ports.ListUsersResult, error) {
	return s.listFn(ctx, actor, filter)
}

func (s *stubUserService) Get(ctx context.Context, id int64) (*ports.UserView, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, actor domain.Principal, id int64, in ports.UpdateUserInput) (*ports.UserView, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

func newTestContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asAdmin(c echo.Context) {
	c.Set(middleware.CtxUserID, int64(3))
	c.Set(middleware.CtxEmail, "mmazur@example.com")
	c.Set(middleware.CtxRole, string(domain.RoleAdmin))
}

func sampleView() *ports.UserView {
	return &ports.UserView{
		ID:        1,
		FirstName: "Piotr",
		LastName:  "Zieliński",
		Email:     "pzielinski@example.com",
		Phone:     "601234567",
		Role:      domain.RoleDancer,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	stub := &stubUserService{
		createFn: func(_ context.Context, actor domain.Principal, in ports.CreateUserInput) (*ports.UserView, error) {
			if actor.ID != 3 || actor.Role != domain.RoleAdmin {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if in.Role != domain.RoleDancer || in.Password != "s3cret" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleView(), nil
		},
	}
	h := NewUserHandler(stub)

	body := `{"firstName":"Piotr","lastName":"Zieliński","email":"pzielinski@example.com","phone":"601234567","role":"tancerz","password":"s3cret"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/users", body)
	asAdmin(c)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data envelope, got %v", resp)
	}
	if data["email"] != "pzielinski@example.com" {
		t.Fatalf("unexpected data payload: %+v", data)
	}
	if _, leaked := data["passwordHash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestUserHandler_Create_ValidationFails(t *testing.T) {
	stub := &stubUserService{
		createFn: func(context.Context, domain.Principal, ports.CreateUserInput) (*ports.UserView, error) {
			t.Fatalf("service must not be called on invalid input")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	// Missing lastName, bad email, role outside the enum.
	body := `{"firstName":"Piotr","email":"not-an-email","role":"guest","password":"x"}`
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/users", body)
	asAdmin(c)

	err := h.Create(c)
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	byField := map[string]string{}
	for _, fe := range ve.Fields {
		byField[fe.Field] = fe.Code
	}
	if byField["lastName"] != CodeRequired {
		t.Errorf("lastName: expected %s, got %s", CodeRequired, byField["lastName"])
	}
	if byField["email"] != CodeInvalidFormat {
		t.Errorf("email: expected %s, got %s", CodeInvalidFormat, byField["email"])
	}
	if byField["role"] != CodeInvalidValue {
		t.Errorf("role: expected %s, got %s", CodeInvalidValue, byField["role"])
	}
}

func TestUserHandler_Create_PhonePattern(t *testing.T) {
	stub := &stubUserService{
		createFn: func(context.Context, domain.Principal, ports.CreateUserInput) (*ports.UserView, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	body := `{"firstName":"A","lastName":"B","email":"a@b.com","phone":"abc!","role":"tancerz","password":"x"}`
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/users", body)
	asAdmin(c)

	err := h.Create(c)
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "phone" || ve.Fields[0].Code != CodeInvalidFormat {
		t.Fatalf("unexpected field errors: %+v", ve.Fields)
	}
}

func TestUserHandler_List_BindsQueryAndWrapsMeta(t *testing.T) {
	stub := &stubUserService{
		listFn: func(_ context.Context, _ domain.Principal, f ports.ListUsersFilter) (*ports.ListUsersResult, error) {
			if f.Search != "ziel" || f.Sort != "first-name" || f.Order != "desc" {
				t.Fatalf("unexpected filter: %+v", f)
			}
			if f.Offset != 1 || f.Limit != 1 {
				t.Fatalf("unexpected pagination: %+v", f)
			}
			if !f.CreatedFrom.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("createdFrom not parsed: %v", f.CreatedFrom)
			}
			return &ports.ListUsersResult{Users: []ports.UserView{*sampleView()}, Total: 3}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet,
		"/api/v1/users?search=ziel&sort=first-name&order=desc&offset=1&limit=1&createdFrom=2025-01-01", "")
	asAdmin(c)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []map[string]any `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Meta.Total != 3 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestUserHandler_List_BadDateBound(t *testing.T) {
	stub := &stubUserService{
		listFn: func(context.Context, domain.Principal, ports.ListUsersFilter) (*ports.ListUsersResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/v1/users?createdFrom=yesterday", "")
	asAdmin(c)

	err := h.List(c)
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields[0].Field != "createdFrom" {
		t.Fatalf("unexpected field errors: %+v", ve.Fields)
	}
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	stub := &stubUserService{
		getFn: func(context.Context, int64) (*ports.UserView, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/v1/users/abc", "")
	asAdmin(c)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Get_PropagatesNotFound(t *testing.T) {
	stub := &stubUserService{
		getFn: func(_ context.Context, id int64) (*ports.UserView, error) {
			if id != 42 {
				t.Fatalf("unexpected id %d", id)
			}
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/v1/users/42", "")
	asAdmin(c)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Get(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}

func TestUserHandler_Update_PartialBody(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(_ context.Context, _ domain.Principal, id int64, in ports.UpdateUserInput) (*ports.UserView, error) {
			if id != 1 {
				t.Fatalf("unexpected id %d", id)
			}
			if in.Email == nil || *in.Email != "new@x.com" {
				t.Fatalf("email not bound: %+v", in)
			}
			if in.FirstName != nil || in.LastName != nil || in.Phone != nil || in.Role != nil {
				t.Fatalf("absent fields must stay nil: %+v", in)
			}
			v := sampleView()
			v.Email = "new@x.com"
			return v, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/api/v1/users/1", `{"email":"new@x.com"}`)
	asAdmin(c)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_NoContent(t *testing.T) {
	deleted := false
	stub := &stubUserService{
		deleteFn: func(_ context.Context, actor domain.Principal, id int64) error {
			deleted = true
			if actor.ID != 3 || id != 1 {
				t.Fatalf("unexpected args: actor=%+v id=%d", actor, id)
			}
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/users/1", "")
	asAdmin(c)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !deleted {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestUserHandler_MissingPrincipal(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodDelete, "/api/v1/users/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.Delete(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
