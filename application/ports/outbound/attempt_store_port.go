package outbound

import "time"

// AttemptStorePort tracks failed-attempt counters per identity with window
// semantics, injected into the login limiter instead of a module-global map.
type AttemptStorePort interface {
	Get(identity string) (count int, first time.Time, ok bool)
	Put(identity string, count int, first time.Time)
	Reset(identity string)
}
