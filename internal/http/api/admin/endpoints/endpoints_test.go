package endpoints_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartkiosk/console/internal/accounts"
	"github.com/smartkiosk/console/internal/gateway"
	"github.com/smartkiosk/console/internal/http/api"
	"github.com/smartkiosk/console/internal/http/api/admin/endpoints"
	"github.com/smartkiosk/console/internal/model"
	"github.com/smartkiosk/console/internal/playlist"
	"github.com/smartkiosk/console/internal/session"
)

// remoteState is the fake kiosk gateway the console talks to during the
// tests: the /users and /playlist-items contract over a real HTTP server.
type remoteState struct {
	mu          sync.Mutex
	users       []model.User
	items       []model.MediaItem
	failReplace bool
}

var (
	router *gin.Engine
	remote *remoteState
	gw     *gateway.Client
)

func (s *remoteState) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		json.NewEncoder(w).Encode(s.users)
	})
	mux.HandleFunc("PUT /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		var u model.User
		json.NewDecoder(r.Body).Decode(&u)
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.users {
			if s.users[i].ID == id {
				u.ID = id
				s.users[i] = u
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /playlist-items", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		json.NewEncoder(w).Encode(s.items)
	})
	mux.HandleFunc("POST /playlist-items", func(w http.ResponseWriter, r *http.Request) {
		var items []model.MediaItem
		json.NewDecoder(r.Body).Decode(&items)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failReplace {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		s.items = items
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	remote = &remoteState{
		users: []model.User{
			{ID: 1, Name: "Ana", Email: "ana@kiosk.dev", TaxID: "111", Password: "segredo", Active: true},
		},
		items: []model.MediaItem{
			{ID: 1, Key: "PROMO", Source: "videos/promo.mp4", Kind: "video", DurationMs: 30000, Position: 1, Active: true},
			{ID: 2, Key: "INTRO", Source: "videos/intro.mp4", Kind: "video", DurationMs: 15000, Position: 2, Active: true},
		},
	}
	server := httptest.NewServer(remote.handler())
	defer server.Close()

	gw = gateway.NewClient(server.URL, nil)
	gate := session.NewGate(gw, session.NewMemoryStore(), "test-secret")
	engine := playlist.NewEngine(gw, nil)
	directory := accounts.NewDirectory(gw)

	router = gin.New()
	api.MountGroup(router, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	}, endpoints.AuthPublicModule(gate))
	api.MountGroup(router, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   true,
		Gate:   gate,
	},
		endpoints.PlaylistModule(engine, gw),
		endpoints.UsersModule(directory),
		endpoints.AuthSessionModule(gate),
	)

	os.Exit(m.Run())
}

func doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T) string {
	t.Helper()
	w := doJSON(t, http.MethodPost, "/api/admin/auth/login", "", map[string]string{
		"email":    "ana@kiosk.dev",
		"password": "segredo",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Name != "Ana" {
		t.Fatalf("name = %q, want Ana", resp.Name)
	}
	return resp.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	w := doJSON(t, http.MethodPost, "/api/admin/auth/login", "", map[string]string{
		"email":    "ana@kiosk.dev",
		"password": "errada",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid email or password") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestPlaylistRequiresSession(t *testing.T) {
	w := doJSON(t, http.MethodGet, "/api/admin/playlist", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestPlaylistViewAndMutations(t *testing.T) {
	token := login(t)

	w := doJSON(t, http.MethodGet, "/api/admin/playlist", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("view status %d: %s", w.Code, w.Body.String())
	}
	var view struct {
		Items []struct {
			ID              int    `json:"id"`
			DurationSeconds int    `json:"duration_seconds"`
			Position        int    `json:"position"`
			Key             string `json:"key"`
		} `json:"items"`
		TotalMedia   int `json:"total_media"`
		CycleMinutes int `json:"cycle_minutes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.TotalMedia != 2 || len(view.Items) != 2 {
		t.Fatalf("view: %+v", view)
	}
	if view.Items[0].DurationSeconds != 30 {
		t.Errorf("duration shown as %d seconds, want 30", view.Items[0].DurationSeconds)
	}

	// Create appends at the end with the next id and position.
	w = doJSON(t, http.MethodPost, "/api/admin/playlist/items", token, map[string]any{
		"key":              "NOVO",
		"duration_seconds": 20,
		"source_url":       "videos/novo.mp4",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status %d: %s", w.Code, w.Body.String())
	}
	remote.mu.Lock()
	if len(remote.items) != 3 || remote.items[2].ID != 3 || remote.items[2].Position != 3 {
		t.Fatalf("remote after create: %+v", remote.items)
	}
	remote.mu.Unlock()

	// Validation failures never reach the gateway.
	w = doJSON(t, http.MethodPost, "/api/admin/playlist/items", token, map[string]any{
		"key":              "",
		"duration_seconds": 20,
		"source_url":       "videos/x.mp4",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid draft status %d, want 400", w.Code)
	}

	// Removing the middle item renumbers the survivors.
	w = doJSON(t, http.MethodDelete, "/api/admin/playlist/items/2", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status %d: %s", w.Code, w.Body.String())
	}
	remote.mu.Lock()
	defer remote.mu.Unlock()
	if len(remote.items) != 2 {
		t.Fatalf("remote after delete: %+v", remote.items)
	}
	for i, it := range remote.items {
		if it.Position != i+1 {
			t.Errorf("position at index %d is %d, want %d", i, it.Position, i+1)
		}
	}
}

func TestMutationTransportFailureIsConnectivity(t *testing.T) {
	token := login(t)

	// Load the current list first; fetches still work, only the replace
	// call is down.
	if w := doJSON(t, http.MethodGet, "/api/admin/playlist", token, nil); w.Code != http.StatusOK {
		t.Fatalf("view status %d: %s", w.Code, w.Body.String())
	}

	remote.mu.Lock()
	remote.failReplace = true
	victim := remote.items[0].ID
	remote.mu.Unlock()
	defer func() {
		remote.mu.Lock()
		remote.failReplace = false
		remote.mu.Unlock()
	}()

	w := doJSON(t, http.MethodDelete, "/api/admin/playlist/items/"+strconv.Itoa(victim), token, nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status %d, want 502 when the gateway rejects the save", w.Code)
	}
	if !strings.Contains(w.Body.String(), "kiosk service unreachable") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}

	remote.mu.Lock()
	defer remote.mu.Unlock()
	for _, it := range remote.items {
		if it.ID == victim {
			return
		}
	}
	t.Fatal("failed delete must not change the stored collection")
}

// failingStore rejects every write, standing in for a Redis outage.
type failingStore struct{}

func (failingStore) Put(context.Context, string, string, time.Duration) error {
	return errors.New("store down")
}
func (failingStore) Get(context.Context, string) (string, error) { return "", session.ErrNoSession }
func (failingStore) Delete(context.Context, string) error        { return nil }

func TestLoginStoreFailureIsNotConnectivity(t *testing.T) {
	gate := session.NewGate(gw, failingStore{}, "test-secret")
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin", Auth: false},
		endpoints.AuthPublicModule(gate))

	raw, _ := json.Marshal(map[string]string{"email": "ana@kiosk.dev", "password": "segredo"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500 for a local session failure", w.Code)
	}
	if strings.Contains(w.Body.String(), "unreachable") {
		t.Errorf("local failure must not be reported as connectivity: %s", w.Body.String())
	}
}

func TestUserPasswordRetention(t *testing.T) {
	token := login(t)

	w := doJSON(t, http.MethodGet, "/api/admin/users", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("users view status %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "segredo") {
		t.Fatal("user listing must not echo passwords")
	}

	w = doJSON(t, http.MethodPut, "/api/admin/users/1", token, map[string]any{
		"name":   "Ana Silva",
		"email":  "ana@kiosk.dev",
		"tax_id": "111",
		"active": true,
		// no password supplied
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status %d: %s", w.Code, w.Body.String())
	}

	remote.mu.Lock()
	defer remote.mu.Unlock()
	if remote.users[0].Password != "segredo" {
		t.Fatalf("stored password = %q, want retained", remote.users[0].Password)
	}
	if remote.users[0].Name != "Ana Silva" {
		t.Fatalf("name = %q, want updated", remote.users[0].Name)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	token := login(t)

	if w := doJSON(t, http.MethodPost, "/api/admin/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout status %d", w.Code)
	}
	if w := doJSON(t, http.MethodGet, "/api/admin/auth/session", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("session after logout status %d, want 401", w.Code)
	}
}
