package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrHasher marks a failure of the hashing primitive itself. It is never
	// a password mismatch.
	ErrHasher = errors.New("password hasher failure")

	ErrProfileNotFound = errors.New("profile not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrSessionNotFound = errors.New("session not found")
)
