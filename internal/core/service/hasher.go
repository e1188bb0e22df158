package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

// DefaultBcryptCost matches the 10 salt rounds existing hashes were made with.
const DefaultBcryptCost = 10

// BcryptHasher implements ports.PasswordHasher. The bcrypt work runs on its
// own goroutine so a caller whose context is cancelled stops waiting for it.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost, or DefaultBcryptCost
// when cost is 0.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// maxPasswordBytes is bcrypt's input limit. Longer passwords are truncated
// to it, as the hashes already in the store were made that way.
const maxPasswordBytes = 72

func passwordBytes(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

type bcryptResult struct {
	hash []byte
	err  error
}

func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan bcryptResult, 1)
	go func() {
		b, err := bcrypt.GenerateFromPassword(passwordBytes(plaintext), h.cost)
		done <- bcryptResult{hash: b, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrHasher, r.err)
		}
		return string(r.hash), nil
	}
}

func (h *BcryptHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	done := make(chan error, 1)
	go func() {
		done <- bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(plaintext))
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-done:
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("%w: %w", domain.ErrHasher, err)
		}
	}
}
