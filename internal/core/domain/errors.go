package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrEmailExists = errors.New("email already exists")
var ErrNoPermission = errors.New("no permission")
var ErrInvalidCredentials = errors.New("invalid email or password")
