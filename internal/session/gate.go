// Package session is the gate between the login form and the rest of the
// console. Credentials are checked against the user collection fetched
// from the gateway; a match creates a session marker and a signed token
// the browser sends back on every request.
//
// The credential check itself is a cleartext comparison against data the
// gateway hands out openly. That is the gateway's contract, not a design
// choice of this package, and it is not a security boundary; see
// DESIGN.md before reusing any of this elsewhere.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smartkiosk/console/internal/model"
)

// ErrInvalidCredentials is returned when email/password don't match any
// active operator. Transport failures are surfaced as-is so callers can
// show a distinct connectivity message.
var ErrInvalidCredentials = errors.New("invalid email or password")

// sessionTTL bounds both the stored marker and the token expiry.
const sessionTTL = 72 * time.Hour

// UserSource lists the operator accounts the gate scans at login.
type UserSource interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

// Gate authenticates operators and tracks active sessions.
type Gate struct {
	users  UserSource
	store  Store
	secret string
}

// NewGate wires a gate to its user source and session store.
func NewGate(users UserSource, store Store, secret string) *Gate {
	return &Gate{users: users, store: store, secret: secret}
}

// Authenticate scans the fetched user collection for an exact
// email/password match. On success it records a session marker and
// returns the signed token plus the operator's display name. Inactive
// accounts are rejected the same way as wrong credentials.
func (g *Gate) Authenticate(ctx context.Context, email, password string) (token, name string, err error) {
	users, err := g.users.ListUsers(ctx)
	if err != nil {
		return "", "", err
	}

	var match *model.User
	for i := range users {
		if users[i].Email == email && users[i].Password == password && users[i].Active {
			match = &users[i]
			break
		}
	}
	if match == nil {
		log.Warn().Str("email", email).Msg("[session] login rejected")
		return "", "", ErrInvalidCredentials
	}

	sid, err := newSessionID()
	if err != nil {
		return "", "", err
	}
	if err := g.store.Put(ctx, sid, match.Name, sessionTTL); err != nil {
		log.Error().Err(err).Msg("[session] could not store session marker")
		return "", "", err
	}
	token, err = signToken(sid, g.secret, sessionTTL)
	if err != nil {
		return "", "", err
	}
	log.Info().Str("operator", match.Name).Msg("[session] login")
	return token, match.Name, nil
}

// Resolve verifies a token and returns the operator name of its active
// session, or ErrNoSession.
func (g *Gate) Resolve(ctx context.Context, token string) (string, error) {
	sid, err := parseToken(token, g.secret)
	if err != nil {
		return "", ErrNoSession
	}
	return g.store.Get(ctx, sid)
}

// Logout clears the session marker unconditionally. Unknown or malformed
// tokens are ignored; logging out twice is fine.
func (g *Gate) Logout(ctx context.Context, token string) error {
	sid, err := parseToken(token, g.secret)
	if err != nil {
		return nil
	}
	return g.store.Delete(ctx, sid)
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
