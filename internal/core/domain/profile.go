package domain

// View names the template variant a profile is rendered with.
type View string

const (
	ViewMusician  View = "profile_musician"
	ViewBand      View = "profile_band"
	ViewOrganizer View = "profile_organizer"
)

// RenderModel is the role-specific bundle handed to the view layer for /profile.
// Bands is set only for band members, Events only for organizers.
type RenderModel struct {
	View   View    `json:"view"`
	User   *User   `json:"user"`
	Bands  []Band  `json:"bands,omitempty"`
	Events []Event `json:"events,omitempty"`
}
