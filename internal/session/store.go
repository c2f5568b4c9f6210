// Package session holds the authenticated user's token pair for the lifetime
// of the process and mirrors it to a single durable file, so that a later run
// starts already logged in.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/domain"
)

// StorageFilename is the single durable entry holding the serialized token
// pair, relative to the configured state directory.
const StorageFilename = "authTokens.json"

// Store is the single source of truth for the current authentication
// credential. The in-memory value and the durable file are updated together
// on every Login and Logout, so the two never disagree.
type Store struct {
	mu     sync.Mutex
	path   string
	tokens *domain.AuthTokens
	logger *slog.Logger
}

// Open creates a Store backed by the file at path and rehydrates any session
// persisted by a previous run. A missing or malformed file means the session
// simply starts unauthenticated; it is never an error and the bad value is
// discarded without touching storage. No network call is made here — a stale
// token is only discovered when a later API call is rejected.
func Open(path string, log *slog.Logger) *Store {
	s := &Store{path: path, logger: log}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("could not read stored session", slog.String("path", path), slog.String("error", err.Error()))
		}
		return s
	}

	var tokens domain.AuthTokens
	if err := json.Unmarshal(raw, &tokens); err != nil {
		log.Warn("stored session is malformed, starting logged out", slog.String("path", path))
		return s
	}

	s.tokens = &tokens
	log.Debug("session rehydrated from disk")
	return s
}

// Login adopts the given token pair as the current session and persists it.
// Memory and file are written in the same call.
func (s *Store) Login(tokens domain.AuthTokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens = &tokens

	raw, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return err
	}

	s.logger.Info("session established")
	return nil
}

// Logout clears the session from memory and removes the durable entry.
// Calling it when already logged out is a no-op with the same end state.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("could not remove stored session", slog.String("error", err.Error()))
	}
	s.logger.Info("session cleared")
}

// AccessToken returns the access token if a session is held. It never fails;
// the second return reports presence.
func (s *Store) AccessToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens == nil {
		return "", false
	}
	return s.tokens.Access, true
}

// Tokens returns a copy of the held token pair, if any.
func (s *Store) Tokens() (domain.AuthTokens, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens == nil {
		return domain.AuthTokens{}, false
	}
	return *s.tokens, true
}

// IsAuthenticated reports whether a session is held. It is always derived
// from token presence; no separate flag is kept anywhere.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens != nil
}
