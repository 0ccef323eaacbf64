package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process. go-cache owns expiry; its janitor
// evicts expired entries every pruneEvery.
type MemoryStore struct {
	c *gocache.Cache
}

func NewMemoryStore(pruneEvery time.Duration) *MemoryStore {
	if pruneEvery <= 0 {
		pruneEvery = DefaultPruneInterval
	}
	return &MemoryStore{c: gocache.New(gocache.NoExpiration, pruneEvery)}
}

func (m *MemoryStore) Create(_ context.Context, s Session) error {
	m.c.Set(s.ID, s.clone(), m.ttl(s.Expires))
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, bool, error) {
	v, ok := m.c.Get(id)
	if !ok {
		return Session{}, false, nil
	}
	s := v.(Session)
	s.ID = id
	return s.clone(), true, nil
}

func (m *MemoryStore) Touch(ctx context.Context, id string, expires time.Time) error {
	s, ok, _ := m.Get(ctx, id)
	if !ok {
		return ErrNotFound
	}
	s.Expires = expires
	m.c.Set(id, s, m.ttl(expires))
	return nil
}

func (m *MemoryStore) Destroy(_ context.Context, id string) error {
	m.c.Delete(id)
	return nil
}

func (m *MemoryStore) PruneExpired(_ context.Context) (int, error) {
	before := m.c.ItemCount()
	m.c.DeleteExpired()
	return before - m.c.ItemCount(), nil
}

func (m *MemoryStore) ttl(expires time.Time) time.Duration {
	d := time.Until(expires)
	if d <= 0 {
		// already expired; keep it until the next sweep
		return time.Nanosecond
	}
	return d
}
