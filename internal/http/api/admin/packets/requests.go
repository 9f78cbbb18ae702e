package packets

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateMediaRequest carries the draft for a new playlist entry.
// SourceURL is the path returned by a prior upload call.
type CreateMediaRequest struct {
	Key             string `json:"key"`
	DurationSeconds int    `json:"duration_seconds"`
	SourceURL       string `json:"source_url"`
}

// UpdateMediaRequest is the edit form: folder is "videos/" or "" and the
// file name carries no extension; the engine recomposes the source path.
type UpdateMediaRequest struct {
	Key             string `json:"key"`
	Folder          string `json:"folder"`
	FileName        string `json:"file_name"`
	DurationSeconds int    `json:"duration_seconds"`
}

// UserRequest is the create/edit form for an operator account. On edit an
// empty password means "keep the current one".
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	TaxID    string `json:"tax_id"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Active   bool   `json:"active"`
}
