package redisx

import (
	"fmt"
	"time"
)

const (
	// Session payload: sess:{session_id} -> JSON session, TTL = session expiry
	KeySession = "sess:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var TTLDedup = 48 * time.Hour

func SessionKey(id string) string { return fmt.Sprintf(KeySession, id) }

func DedupKey(service, eventID string) string { return fmt.Sprintf(KeyDedup, service, eventID) }
