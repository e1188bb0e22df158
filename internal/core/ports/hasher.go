package ports

import "context"

// PasswordHasher is a one-way salted hash with verification.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify returns (false, nil) on mismatch. Any other failure is an error
	// wrapping domain.ErrHasher.
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}
