package domain

import "time"

// Role selects which profile variant a user gets. Stored as free text, so
// values outside the known set are legal rows that cannot be rendered.
type Role string

const (
	RoleMusician       Role = "musician"
	RoleBandMember     Role = "band_member"
	RoleEventOrganizer Role = "event_organizer"
)

// Known reports whether r is one of the renderable roles.
func (r Role) Known() bool {
	switch r {
	case RoleMusician, RoleBandMember, RoleEventOrganizer:
		return true
	}
	return false
}

// User is an account together with its public profile attributes.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	Role           Role      `json:"role"`
	Description    string    `json:"description"`
	Instrument     *string   `json:"instrument,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	Video          *string   `json:"video,omitempty"`
	Audio          *string   `json:"audio,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Principal is what a session holds between requests: the user id, nothing more.
type Principal struct {
	UserID int64
}
