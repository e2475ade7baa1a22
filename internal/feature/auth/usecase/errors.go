// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register a user with
	// an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrEmailInUse is returned when a profile update would change the email to
	// one that belongs to a different user.
	ErrEmailInUse = errors.New("email already in use")

	// ErrPasswordTooShort is returned when a new password fails the minimum
	// length check. A validation failure, not a store fault.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

	// ErrInvalidCredentials is returned when email/password verification fails.
	// It deliberately does not distinguish "no such user" from "wrong password".
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionInvalid is returned when a session exists but is expired or revoked.
	ErrSessionInvalid = errors.New("session is expired or revoked")
)
