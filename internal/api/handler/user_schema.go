package handler

import "github.com/e-garderoba/backend/internal/core/ports"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error            string       `json:"error"`
	ValidationErrors []FieldError `json:"validationErrors,omitempty"`
}

// --- Request types ---

type createUserRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string `json:"lastName"  validate:"required,min=1,max=50"`
	Email     string `json:"email"     validate:"required,email,max=255"`
	Phone     string `json:"phone"     validate:"omitempty,max=20,phone"`
	Role      string `json:"role"      validate:"required,oneof=tancerz kierownik administrator"`
	Password  string `json:"password"  validate:"required,min=1"`
}

// updateUserRequest is a partial update; absent fields stay untouched.
type updateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=1,max=50"`
	Email     *string `json:"email"     validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone"     validate:"omitempty,max=20,phone"`
	Role      *string `json:"role"      validate:"omitempty,oneof=tancerz kierownik administrator"`
}

// listUsersQuery carries the optional list parameters. Date bounds come
// in as strings and are parsed by the handler.
type listUsersQuery struct {
	Search      string `query:"search"`
	FirstName   string `query:"firstName"`
	LastName    string `query:"lastName"`
	Email       string `query:"email"`
	Role        string `query:"role"        validate:"omitempty,oneof=tancerz kierownik administrator"`
	CreatedFrom string `query:"createdFrom"`
	CreatedTo   string `query:"createdTo"`
	Sort        string `query:"sort"`
	Order       string `query:"order"`
	Offset      int    `query:"offset" validate:"omitempty,min=0"`
	Limit       int    `query:"limit"  validate:"omitempty,min=1"`
}

// --- Response envelopes ---

// dataResponse wraps every single-object success payload.
type dataResponse struct {
	Data ports.UserView `json:"data"`
}

type listMeta struct {
	Total int64 `json:"total"`
}

// listResponse wraps list payloads together with the pre-pagination total.
type listResponse struct {
	Data []ports.UserView `json:"data"`
	Meta listMeta         `json:"meta"`
}
