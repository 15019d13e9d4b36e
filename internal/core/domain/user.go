package domain

import "time"

// User is the managed account entity. PasswordHash is opaque and must
// never leave the service layer; outward-facing code works with the
// projection types in ports.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated actor derived from a verified token.
// Immutable for the lifetime of a request; never persisted here.
type Principal struct {
	ID    int64
	Email string
	Role  Role
}
