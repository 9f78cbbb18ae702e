// Package playlist implements the reconciliation engine for the kiosk
// media list: it owns the in-memory copy between gateway fetches, derives
// the filtered/paginated view the UI renders, and computes the full
// replacement collection sent back on every mutation.
package playlist

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/smartkiosk/console/internal/model"
)

// PageSize is the number of media rows per dashboard page.
const PageSize = 5

// Gateway is the slice of the remote data service the engine needs.
type Gateway interface {
	FetchPlaylist(ctx context.Context) ([]model.MediaItem, error)
	ReplacePlaylist(ctx context.Context, items []model.MediaItem) error
}

// Notifier is told after every successfully persisted playlist change so
// idle kiosk displays can refresh. A nil Notifier is a no-op.
type Notifier interface {
	PlaylistUpdated()
}

// Stats are the dashboard aggregates, recomputed on every load.
type Stats struct {
	Total        int
	Active       int
	CycleMinutes int
}

// View is a derived, display-ready snapshot: the current page of the
// filtered list plus paging and aggregate counters.
type View struct {
	Items         []model.MediaItem
	Page          int
	TotalPages    int
	TotalFiltered int
	Stats         Stats
}

// Draft is the input for a new media item. SourceURL comes from a prior
// upload call; the engine assigns id, position and the remaining fields.
type Draft struct {
	Key             string
	DurationSeconds int
	SourceURL       string
}

// Patch is the edit-flow input. Folder and FileName recompose the source
// path; Position is deliberately not editable here.
type Patch struct {
	Key             string
	Folder          string
	FileName        string
	DurationSeconds int
}

// Engine owns the in-memory playlist between fetches. Every mutation
// persists the entire reconciled collection (the gateway endpoint has
// bulk-replace semantics) and then reloads.
type Engine struct {
	gw       Gateway
	notifier Notifier

	mu    sync.Mutex
	items []model.MediaItem
	term  string
	page  int
	stats Stats
}

// NewEngine returns an engine with an empty list on page 1.
// notifier may be nil.
func NewEngine(gw Gateway, notifier Notifier) *Engine {
	return &Engine{gw: gw, notifier: notifier, page: 1}
}

// Load fetches the full collection, sorts it ascending by position and
// replaces the in-memory state. On failure the previous state is left
// untouched and the transport error is returned.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reload(ctx)
}

// reload is Load without the locking; callers hold e.mu.
func (e *Engine) reload(ctx context.Context) error {
	items, err := e.gw.FetchPlaylist(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[playlist] load failed")
		return err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	e.items = items
	e.stats = computeStats(items)
	return nil
}

func computeStats(items []model.MediaItem) Stats {
	s := Stats{Total: len(items)}
	totalMs := 0
	for _, it := range items {
		if it.Active {
			s.Active++
		}
		totalMs += it.DurationMs
	}
	s.CycleMinutes = totalMs / 60000
	return s
}

// Search sets the filter term. Any change of term resets the current page
// to 1 so a stale page number is never shown against a new result set.
func (e *Engine) Search(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if term != e.term {
		e.term = term
		e.page = 1
	}
}

// SetPage sets the current page. The engine does not clamp n; callers
// bound it against TotalPages from the view.
func (e *Engine) SetPage(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = n
}

// View recomputes the filtered, paginated snapshot from the canonical
// sorted list. Nothing is cached; the collection is tens of items.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	filtered := e.filtered()
	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	start := (e.page - 1) * PageSize
	end := start + PageSize
	var pageItems []model.MediaItem
	if start >= 0 && start < total {
		if end > total {
			end = total
		}
		pageItems = append(pageItems, filtered[start:end]...)
	}

	return View{
		Items:         pageItems,
		Page:          e.page,
		TotalPages:    totalPages,
		TotalFiltered: total,
		Stats:         e.stats,
	}
}

// filtered keeps items whose key or source contains the term,
// case-insensitively. An empty term keeps everything.
func (e *Engine) filtered() []model.MediaItem {
	if e.term == "" {
		return e.items
	}
	term := strings.ToLower(e.term)
	var out []model.MediaItem
	for _, it := range e.items {
		if strings.Contains(strings.ToLower(it.Key), term) ||
			strings.Contains(strings.ToLower(it.Source), term) {
			out = append(out, it)
		}
	}
	return out
}

// Create validates the draft, assigns id/position and appends the item,
// then persists the entire list and reloads.
func (e *Engine) Create(ctx context.Context, draft Draft) error {
	if err := validateDraft(draft); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	item := model.MediaItem{
		ID:         nextID(e.items),
		Key:        draft.Key,
		Source:     draft.SourceURL,
		Kind:       model.KindVideo,
		DurationMs: draft.DurationSeconds * 1000,
		Position:   len(e.items) + 1,
		Active:     true,
	}

	next := make([]model.MediaItem, 0, len(e.items)+1)
	next = append(next, e.items...)
	next = append(next, item)
	return e.persist(ctx, next)
}

// Update merges the patch into the matching item, leaving its position
// untouched, then persists the full list and reloads. An id absent from
// the in-memory list is a no-op; the caller reloads to resynchronize.
func (e *Engine) Update(ctx context.Context, id int, patch Patch) error {
	if err := validatePatch(patch); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := indexOf(e.items, id)
	if idx < 0 {
		log.Warn().Int("id", id).Msg("[playlist] update target not in current list")
		return nil
	}

	next := make([]model.MediaItem, len(e.items))
	copy(next, e.items)
	next[idx].Key = patch.Key
	next[idx].Source = JoinSource(patch.Folder, patch.FileName)
	next[idx].DurationMs = patch.DurationSeconds * 1000
	return e.persist(ctx, next)
}

// Remove filters out the matching item and renumbers the remaining
// positions to 1..N-1 in their existing relative order. Skipping the
// renumbering would leave gaps that corrupt playback order on the device,
// so it always runs before the list is persisted.
func (e *Engine) Remove(ctx context.Context, id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if indexOf(e.items, id) < 0 {
		log.Warn().Int("id", id).Msg("[playlist] remove target not in current list")
		return nil
	}

	next := make([]model.MediaItem, 0, len(e.items)-1)
	for _, it := range e.items {
		if it.ID == id {
			continue
		}
		next = append(next, it)
	}
	for i := range next {
		next[i].Position = i + 1
	}
	return e.persist(ctx, next)
}

// persist bulk-replaces the gateway collection with next, notifies the
// kiosk displays and reloads. Callers hold e.mu. A partial list is never
// sent; next is always the full reconciled collection.
func (e *Engine) persist(ctx context.Context, next []model.MediaItem) error {
	if err := e.gw.ReplacePlaylist(ctx, next); err != nil {
		log.Error().Err(err).Msg("[playlist] persist failed")
		return err
	}
	if e.notifier != nil {
		e.notifier.PlaylistUpdated()
	}
	return e.reload(ctx)
}

// nextID assigns max(existing ids)+1, or 1 on an empty list. Not
// coordinated with server-side inserts; the single-operator model accepts
// that.
func nextID(items []model.MediaItem) int {
	max := 0
	for _, it := range items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}

func indexOf(items []model.MediaItem, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
