package services

import "errors"

// Common service errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidState       = errors.New("invalid state transition")
	ErrDuplicate          = errors.New("duplicate record")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive or suspended")
)
