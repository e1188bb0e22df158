package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

const userColumns = `id, email, password, COALESCE(name, ''), role, COALESCE(description, ''),
	instrument, profile_picture, video, audio, created_at`

type UserRepository struct {
	pool poolIface
}

func NewUserRepository(pool poolIface) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row, "find user by email")
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row, "find user by id")
}

// Create inserts the user. A unique_violation on email maps to
// domain.ErrUserExists, which covers registrations that race past the
// pre-check.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created := *user
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password, name, role, description, instrument, profile_picture, video, audio)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		user.Email,
		user.PasswordHash,
		user.Name,
		string(user.Role),
		user.Description,
		user.Instrument,
		user.ProfilePicture,
		user.Video,
		user.Audio,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func scanUser(row pgx.Row, op string) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &u.Description,
		&u.Instrument, &u.ProfilePicture, &u.Video, &u.Audio, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}
