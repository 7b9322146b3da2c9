// Package auth implements the shared-password gate in front of the
// watchlist. There are no accounts or tokens: a session is either unlocked
// or it is not.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword     = errors.New("password is required")
	ErrIncorrectPassword = errors.New("incorrect password, please try again")
)

type Gate struct {
	secret string

	mu            sync.RWMutex
	authenticated bool
}

// NewGate returns a gate for secret. An empty secret disables the gate and
// the session starts unlocked.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret, authenticated: secret == ""}
}

func (g *Gate) Enabled() bool {
	return g.secret != ""
}

func (g *Gate) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authenticated
}

// Unlock compares attempt with the configured secret and marks the session
// authenticated on a match.
func (g *Gate) Unlock(attempt string) error {
	if !g.Enabled() {
		return nil
	}
	if attempt == "" {
		return ErrEmptyPassword
	}
	if !g.matches(attempt) {
		return ErrIncorrectPassword
	}

	g.mu.Lock()
	g.authenticated = true
	g.mu.Unlock()
	return nil
}

// Lock ends the session. It is a no-op when the gate is disabled.
func (g *Gate) Lock() {
	if !g.Enabled() {
		return
	}
	g.mu.Lock()
	g.authenticated = false
	g.mu.Unlock()
}

func (g *Gate) matches(attempt string) bool {
	if IsHashed(g.secret) {
		return bcrypt.CompareHashAndPassword([]byte(g.secret), []byte(attempt)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.secret), []byte(attempt)) == 1
}

// IsHashed reports whether secret looks like a bcrypt hash.
func IsHashed(secret string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(secret, prefix) {
			return true
		}
	}
	return false
}

// HashSecret returns a bcrypt hash suitable for APP_PASSWORD.
func HashSecret(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
