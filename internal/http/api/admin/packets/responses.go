package packets

type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

type SessionResponse struct {
	Name string `json:"name"`
}

// MediaItemResponse exchanges durations as whole seconds; the engine
// stores milliseconds.
type MediaItemResponse struct {
	ID              int    `json:"id"`
	Key             string `json:"key"`
	Source          string `json:"source"`
	Kind            string `json:"kind"`
	DurationSeconds int    `json:"duration_seconds"`
	Position        int    `json:"position"`
	Active          bool   `json:"active"`
}

type PlaylistViewResponse struct {
	Items         []MediaItemResponse `json:"items"`
	Page          int                 `json:"page"`
	TotalPages    int                 `json:"total_pages"`
	TotalFiltered int                 `json:"total_filtered"`
	TotalMedia    int                 `json:"total_media"`
	ActiveMedia   int                 `json:"active_media"`
	CycleMinutes  int                 `json:"cycle_minutes"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

// UserResponse never echoes the stored password.
type UserResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	TaxID  string `json:"tax_id"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"active"`
}

type UsersViewResponse struct {
	Users         []UserResponse `json:"users"`
	Page          int            `json:"page"`
	TotalPages    int            `json:"total_pages"`
	TotalFiltered int            `json:"total_filtered"`
}
