package services

import (
	"errors"
)

// Business-rule and auth failures surfaced to controllers. Controllers map
// these to HTTP status codes; anything else is treated as a 500.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrIncorrectPassword  = errors.New("current password is incorrect")

	ErrDuplicateDate = errors.New("a menu already exists for this date")
	ErrMenuNotFound  = errors.New("menu not found")
	ErrAlreadyRated  = errors.New("menu already rated by this user")

	ErrReportNotFound = errors.New("report not found")

	ErrDuplicateRecord = errors.New("a wellness record already exists for this date")
)
