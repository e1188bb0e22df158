package domain

import "time"

// Event is a gig listing. OrganizerID is nil for events added anonymously.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	OrganizerID *int64    `json:"organizer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
