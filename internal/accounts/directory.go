// Package accounts manages operator accounts the same way the playlist
// engine manages media: fetch the full collection, derive a filtered and
// paginated view, push single-record mutations back to the gateway and
// reload.
package accounts

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/smartkiosk/console/internal/model"
)

// PageSize is the number of account rows per page.
const PageSize = 10

// Gateway is the slice of the remote data service the directory needs.
// Unlike the playlist endpoint, user mutations are per-record calls.
type Gateway interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, u model.User) (*model.User, error)
	UpdateUser(ctx context.Context, id int, u model.User) error
	DeleteUser(ctx context.Context, id int) error
}

// Input is the create/edit form for an account. On edit, an empty
// Password means "retain the stored password".
type Input struct {
	Name     string
	Email    string
	TaxID    string
	Phone    string
	Password string
	Active   bool
}

// View is the derived account listing snapshot.
type View struct {
	Users         []model.User
	Page          int
	TotalPages    int
	TotalFiltered int
}

// Directory owns the in-memory account list between gateway fetches.
type Directory struct {
	gw Gateway

	mu    sync.Mutex
	users []model.User
	term  string
	page  int
}

// NewDirectory returns a directory with an empty list on page 1.
func NewDirectory(gw Gateway) *Directory {
	return &Directory{gw: gw, page: 1}
}

// Load fetches the full account collection, replacing in-memory state.
// On failure the previous state is left untouched.
func (d *Directory) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reload(ctx)
}

func (d *Directory) reload(ctx context.Context) error {
	users, err := d.gw.ListUsers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[accounts] load failed")
		return err
	}
	d.users = users
	return nil
}

// Search filters accounts by name, email or tax id, case-insensitively.
// A term change resets the current page to 1.
func (d *Directory) Search(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if term != d.term {
		d.term = term
		d.page = 1
	}
}

// SetPage sets the current page; callers bound it against TotalPages.
func (d *Directory) SetPage(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.page = n
}

// View recomputes the filtered, paginated snapshot on every read.
func (d *Directory) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	filtered := d.filtered()
	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	start := (d.page - 1) * PageSize
	end := start + PageSize
	var pageUsers []model.User
	if start >= 0 && start < total {
		if end > total {
			end = total
		}
		pageUsers = append(pageUsers, filtered[start:end]...)
	}

	return View{
		Users:         pageUsers,
		Page:          d.page,
		TotalPages:    totalPages,
		TotalFiltered: total,
	}
}

func (d *Directory) filtered() []model.User {
	if d.term == "" {
		return d.users
	}
	term := strings.ToLower(d.term)
	var out []model.User
	for _, u := range d.users {
		if strings.Contains(strings.ToLower(u.Name), term) ||
			strings.Contains(strings.ToLower(u.Email), term) ||
			strings.Contains(strings.ToLower(u.TaxID), term) {
			out = append(out, u)
		}
	}
	return out
}

// Create posts a new account; the gateway assigns the id. Then reloads.
func (d *Directory) Create(ctx context.Context, in Input) error {
	if err := validateInput(in); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.gw.CreateUser(ctx, toUser(in, 0)); err != nil {
		log.Error().Err(err).Msg("[accounts] create failed")
		return err
	}
	return d.reload(ctx)
}

// Update merges the input into the stored account. An empty password is
// never submitted: the previously fetched value is carried over verbatim.
// An id absent from the in-memory list is a no-op.
func (d *Directory) Update(ctx context.Context, id int, in Input) error {
	if err := validateInput(in); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	existing := d.find(id)
	if existing == nil {
		log.Warn().Int("id", id).Msg("[accounts] update target not in current list")
		return nil
	}

	u := toUser(in, id)
	if u.Password == "" {
		u.Password = existing.Password
	}
	if err := d.gw.UpdateUser(ctx, id, u); err != nil {
		log.Error().Err(err).Msg("[accounts] update failed")
		return err
	}
	return d.reload(ctx)
}

// Remove deletes the account and reloads. An id absent from the
// in-memory list is a no-op.
func (d *Directory) Remove(ctx context.Context, id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.find(id) == nil {
		log.Warn().Int("id", id).Msg("[accounts] remove target not in current list")
		return nil
	}
	if err := d.gw.DeleteUser(ctx, id); err != nil {
		log.Error().Err(err).Msg("[accounts] delete failed")
		return err
	}
	return d.reload(ctx)
}

func (d *Directory) find(id int) *model.User {
	for i := range d.users {
		if d.users[i].ID == id {
			return &d.users[i]
		}
	}
	return nil
}

func toUser(in Input, id int) model.User {
	u := model.User{
		ID:       id,
		Name:     in.Name,
		Email:    in.Email,
		TaxID:    in.TaxID,
		Password: in.Password,
		Active:   in.Active,
	}
	if in.Phone != "" {
		phone := in.Phone
		u.Phone = &phone
	}
	return u
}
