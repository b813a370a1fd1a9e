// Package session holds the client-side auth session: the customer access
// token issued by the upstream platform at login, its expiry, and the cached
// customer summary. There is no server-side session store; the token is
// forwarded on every account-scoped request and the platform is the source
// of truth for validity.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"storefront-api/internal/kv"
	"storefront-api/internal/model"
)

// storageKey is the kv key the session persists under.
const storageKey = "session"

// Session is a customer auth session.
type Session struct {
	Token     string         `json:"accessToken"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Customer  model.Customer `json:"customer"`
}

// Expired reports whether the session is no longer usable at the given time.
// An expired token must be treated as absent regardless of well-formedness.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Load reads the saved session from the store. Returns nil when no session
// is saved or the saved one has expired; an expired session is also removed
// from the store so it is not revived by a clock change.
func Load(store kv.Store, now time.Time) (*Session, error) {
	data, ok, err := store.Get(storageKey)
	if err != nil {
		return nil, fmt.Errorf("session: loading: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: decoding: %w", err)
	}
	if s.Expired(now) {
		if err := store.Delete(storageKey); err != nil {
			return nil, fmt.Errorf("session: discarding expired session: %w", err)
		}
		return nil, nil
	}
	return &s, nil
}

// Save persists the session.
func Save(store kv.Store, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encoding: %w", err)
	}
	if err := store.Set(storageKey, data); err != nil {
		return fmt.Errorf("session: saving: %w", err)
	}
	return nil
}

// Clear removes any saved session.
func Clear(store kv.Store) error {
	if err := store.Delete(storageKey); err != nil {
		return fmt.Errorf("session: clearing: %w", err)
	}
	return nil
}
