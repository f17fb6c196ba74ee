package redisx

import "time"

const (
	// Per-session value: session:{sid}:{key} (key = cart | orders | user)
	KeySessionValue = "session:%s:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLSession = 7 * 24 * time.Hour
	TTLDedup   = 48 * time.Hour
)
