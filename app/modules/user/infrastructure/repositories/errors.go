package userdb

import "errors"

// ErrUserNotFound indicates the requested user record does not exist.
var ErrUserNotFound = errors.New("user not found")
