package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

type BandRepository struct {
	pool poolIface
}

func NewBandRepository(pool poolIface) *BandRepository {
	return &BandRepository{pool: pool}
}

func (r *BandRepository) List(ctx context.Context) ([]domain.Band, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, COALESCE(description, ''), COALESCE(image_url, '') FROM bands`)
	if err != nil {
		return nil, fmt.Errorf("list bands: %w", err)
	}
	return collectBands(rows)
}

// ListByMember joins through user_bands in a single query.
func (r *BandRepository) ListByMember(ctx context.Context, userID int64) ([]domain.Band, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.name, COALESCE(b.description, ''), COALESCE(b.image_url, '')
		 FROM bands b
		 JOIN user_bands ub ON ub.band_id = b.id
		 WHERE ub.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bands for user %d: %w", userID, err)
	}
	return collectBands(rows)
}

func collectBands(rows pgx.Rows) ([]domain.Band, error) {
	defer rows.Close()

	bands := []domain.Band{}
	for rows.Next() {
		var b domain.Band
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.ImageURL); err != nil {
			return nil, fmt.Errorf("scan band: %w", err)
		}
		bands = append(bands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bands: %w", err)
	}
	return bands, nil
}

const eventColumns = `id, title, COALESCE(description, ''), COALESCE(image_url, ''), organizer_id, created_at`

type EventRepository struct {
	pool poolIface
}

func NewEventRepository(pool poolIface) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return collectEvents(rows)
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID int64) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE organizer_id = $1`, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events for organizer %d: %w", organizerID, err)
	}
	return collectEvents(rows)
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	created := *event
	err := r.pool.QueryRow(ctx,
		`INSERT INTO events (title, description, image_url, organizer_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		event.Title, event.Description, event.ImageURL, event.OrganizerID,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &created, nil
}

func collectEvents(rows pgx.Rows) ([]domain.Event, error) {
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.ImageURL, &e.OrganizerID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

type ArtistRepository struct {
	pool poolIface
}

func NewArtistRepository(pool poolIface) *ArtistRepository {
	return &ArtistRepository{pool: pool}
}

func (r *ArtistRepository) List(ctx context.Context) ([]domain.Artist, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, COALESCE(genre, ''), COALESCE(description, ''), COALESCE(image_url, '') FROM artists`)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	artists := []domain.Artist{}
	for rows.Next() {
		var a domain.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Genre, &a.Description, &a.ImageURL); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}
