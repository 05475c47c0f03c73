// Package session owns the current identity and the bounded activity log.
// It is an explicit state container with a defined lifecycle
// (Restore, Login, Logout, RecordActivity), persisted through the store.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mzeinebou/edusmart/internal/model"
	"github.com/mzeinebou/edusmart/internal/store"
)

type Session struct {
	store *store.Store

	mu       sync.Mutex
	identity *model.Identity
	history  []model.Activity
}

// New creates an empty, unauthenticated session backed by s.
func New(s *store.Store) *Session {
	return &Session{store: s}
}

// Restore loads the persisted identity and activity history. A malformed
// identity record is discarded silently; a malformed history record is
// logged and replaced with an empty log. Neither failure blocks startup.
func (s *Session) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok, err := s.store.Get(store.KeyIdentity); err != nil {
		return fmt.Errorf("read identity: %w", err)
	} else if ok {
		var id model.Identity
		if err := json.Unmarshal([]byte(raw), &id); err != nil || !id.Role.Valid() {
			_ = s.store.Delete(store.KeyIdentity)
		} else {
			s.identity = &id
		}
	}

	if raw, ok, err := s.store.Get(store.KeyHistory); err != nil {
		return fmt.Errorf("read history: %w", err)
	} else if ok {
		var history []model.Activity
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			slog.Error("corrupt activity history, starting empty", "error", err)
		} else {
			if len(history) > model.HistoryLimit {
				history = history[:model.HistoryLimit]
			}
			s.history = history
		}
	}

	return nil
}

// Login sets and persists the current identity.
func (s *Session) Login(id model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	if err := s.store.Put(store.KeyIdentity, string(raw)); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}
	s.identity = &id
	return nil
}

// Logout clears the current identity from memory and persistent storage.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	if err := s.store.Delete(store.KeyIdentity); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}
	return nil
}

// Identity returns the current identity, or nil when unauthenticated.
func (s *Session) Identity() *model.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// RecordActivity prepends a to the log, truncates it to the most recent
// entries and persists the whole resulting list. The read-modify-write is
// atomic: two calls always apply in call order with no lost update.
func (s *Session) RecordActivity(a model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]model.Activity, 0, len(s.history)+1)
	updated = append(updated, a)
	updated = append(updated, s.history...)
	if len(updated) > model.HistoryLimit {
		updated = updated[:model.HistoryLimit]
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := s.store.Put(store.KeyHistory, string(raw)); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	s.history = updated
	return nil
}

// History returns a copy of the activity log, most recent first.
func (s *Session) History() []model.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Activity, len(s.history))
	copy(out, s.history)
	return out
}
