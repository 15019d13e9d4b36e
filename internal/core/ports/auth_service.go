package ports

import "context"

type AuthService interface {
	// Login verifies the credentials and returns a signed bearer token
	// plus the account's public projection.
	Login(ctx context.Context, email, password string) (string, *UserView, error)
}
