package session

import (
	"context"
	"errors"
	"testing"

	"github.com/smartkiosk/console/internal/model"
)

type fakeUserSource struct {
	users []model.User
	err   error
}

func (f *fakeUserSource) ListUsers(_ context.Context) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

const testSecret = "test-secret"

func newTestGate(users *fakeUserSource) *Gate {
	return NewGate(users, NewMemoryStore(), testSecret)
}

func TestAuthenticateSuccess(t *testing.T) {
	gate := newTestGate(&fakeUserSource{users: []model.User{
		{ID: 1, Name: "Ana", Email: "ana@kiosk.dev", Password: "segredo", Active: true},
	}})

	token, name, err := gate.Authenticate(context.Background(), "ana@kiosk.dev", "segredo")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if name != "Ana" {
		t.Errorf("name = %q, want Ana", name)
	}

	resolved, err := gate.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved != "Ana" {
		t.Errorf("resolved name = %q, want Ana", resolved)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	gate := newTestGate(&fakeUserSource{users: []model.User{
		{ID: 1, Name: "Ana", Email: "ana@kiosk.dev", Password: "segredo", Active: true},
	}})

	_, _, err := gate.Authenticate(context.Background(), "ana@kiosk.dev", "errada")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateInactiveUser(t *testing.T) {
	gate := newTestGate(&fakeUserSource{users: []model.User{
		{ID: 1, Name: "Ana", Email: "ana@kiosk.dev", Password: "segredo", Active: false},
	}})

	_, _, err := gate.Authenticate(context.Background(), "ana@kiosk.dev", "segredo")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials for inactive account", err)
	}
}

func TestAuthenticateTransportFailureIsDistinct(t *testing.T) {
	transportErr := errors.New("connection refused")
	gate := newTestGate(&fakeUserSource{err: transportErr})

	_, _, err := gate.Authenticate(context.Background(), "ana@kiosk.dev", "segredo")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("transport failure must not look like bad credentials, got %v", err)
	}
	if !errors.Is(err, transportErr) {
		t.Fatalf("expected the transport error to propagate, got %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	gate := newTestGate(&fakeUserSource{users: []model.User{
		{ID: 1, Name: "Ana", Email: "ana@kiosk.dev", Password: "segredo", Active: true},
	}})

	token, _, err := gate.Authenticate(context.Background(), "ana@kiosk.dev", "segredo")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := gate.Logout(context.Background(), token); err != nil {
			t.Fatalf("logout #%d: %v", i+1, err)
		}
	}
	if _, err := gate.Resolve(context.Background(), token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("session should be gone after logout, got %v", err)
	}

	// Garbage tokens are ignored as well.
	if err := gate.Logout(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("logout with garbage token: %v", err)
	}
}

func TestResolveRejectsForgedToken(t *testing.T) {
	gate := newTestGate(&fakeUserSource{users: []model.User{
		{ID: 1, Name: "Ana", Email: "ana@kiosk.dev", Password: "segredo", Active: true},
	}})
	token, _, err := gate.Authenticate(context.Background(), "ana@kiosk.dev", "segredo")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	other := NewGate(&fakeUserSource{}, NewMemoryStore(), "other-secret")
	if _, err := other.Resolve(context.Background(), token); err == nil {
		t.Fatal("token signed with a different secret must not resolve")
	}
}
