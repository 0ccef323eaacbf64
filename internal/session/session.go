// Package session holds the session-store capability consumed by the HTTP
// session middleware. Stores know nothing about marketplace entities.
package session

import (
	"context"
	"errors"
	"time"
)

// DefaultPruneInterval is how often expired sessions are swept.
const DefaultPruneInterval = 24 * time.Hour

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID      string         `json:"-"`
	Data    map[string]any `json:"data"`
	Expires time.Time      `json:"expires"`
}

// clone copies the top level of Data so callers cannot mutate stored state.
func (s Session) clone() Session {
	if s.Data == nil {
		return s
	}
	data := make(map[string]any, len(s.Data))
	for k, v := range s.Data {
		data[k] = v
	}
	s.Data = data
	return s
}

// Store is implemented by every session backend.
type Store interface {
	// Create stores s under s.ID, replacing any previous session with that id.
	Create(ctx context.Context, s Session) error
	// Get returns the session if it exists and has not expired.
	Get(ctx context.Context, id string) (Session, bool, error)
	// Touch moves the expiry of a live session. ErrNotFound if there is none.
	Touch(ctx context.Context, id string, expires time.Time) error
	// Destroy removes the session; destroying an unknown id is not an error.
	Destroy(ctx context.Context, id string) error
	// PruneExpired evicts expired sessions and reports how many were removed.
	PruneExpired(ctx context.Context) (int, error)
}
