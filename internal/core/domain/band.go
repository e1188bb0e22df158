package domain

// Band is a group users can be members of.
type Band struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Artist is a listing entry on the artists page.
type Artist struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}
