package model

// MediaItem is one playlist entry shown on the kiosk displays.
// Positions are 1-based and contiguous; the reconciliation engine
// renumbers them after every mutation.
type MediaItem struct {
	ID         int    `db:"id"          json:"id"`
	Key        string `db:"key"         json:"key"`
	Source     string `db:"source"      json:"source"`
	Kind       string `db:"kind"        json:"kind"`
	DurationMs int    `db:"duration_ms" json:"duration_ms"`
	Position   int    `db:"position"    json:"position"`
	Active     bool   `db:"active"      json:"active"`
}

// KindVideo is the only media kind the kiosk player currently supports.
const KindVideo = "video"
