// Package common defines shared constants and sentinel errors used across
// the catalog server and its terminal client. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrStore marks an underlying persistence failure. It is always wrapped
	// together with the driver error so the cause stays loggable.
	ErrStore = errors.New("store error")

	// Validation errors (malformed username, password or product fields).
	ErrValidation = errors.New("validation error")

	// Authentication errors.
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrUsernameExists   = errors.New("username already exists")
	ErrPasswordMismatch = errors.New("password confirmation does not match")

	// Token errors (missing, malformed, expired or badly signed token).
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenParse   = errors.New("token parse error")

	// Catalog errors.
	ErrProductNotFound = errors.New("product not found")
)
