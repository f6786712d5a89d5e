package auth

import (
	"errors"

	"cleanadmin/internal/admin"
	"cleanadmin/internal/models"
)

var (
	// ErrInvalidToken means the token was rejected or could not be verified.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the manager's current state.
	ErrInvalidTransition = errors.New("invalid session state transition")
)

type (
	ValidationError = models.ValidationError
	RequestError    = admin.RequestError
)
