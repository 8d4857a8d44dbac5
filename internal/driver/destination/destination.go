package destination

import (
	"fmt"
	"sync/atomic"
	"time"
)

// DefaultTTL is how long a desired destination stays usable after the
// driver sets it.
const DefaultTTL = 6 * time.Hour

// MaxPerDriver caps the destination list a driver may hold. Enforced by
// the usecase layer, not by this package.
const MaxPerDriver = 3

// Destination is a location a driver wants to be routed toward. Records
// are immutable once created; editing one means replacing it with a
// freshly stamped record.
type Destination struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Address   string    `json:"address"`
}

// lastID forces ids to stay strictly increasing even when two records
// are created within the same millisecond.
var lastID atomic.Int64

func nextID(now time.Time) int64 {
	candidate := now.UnixMilli()
	for {
		last := lastID.Load()
		if candidate <= last {
			candidate = last + 1
		}
		if lastID.CompareAndSwap(last, candidate) {
			return candidate
		}
	}
}

// New stamps a destination record. The caller guarantees a non-empty,
// trimmed address; ttl must be positive.
func New(address string, now time.Time, ttl time.Duration) Destination {
	return Destination{
		ID:        nextID(now),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Address:   address,
	}
}

// ExpiredAt reports whether the record is past its expiry at the given
// instant. The boundary is strict: now == ExpiresAt is still valid.
func (d Destination) ExpiredAt(now time.Time) bool {
	return now.After(d.ExpiresAt)
}

// Partition splits records into still-valid and expired groups,
// preserving relative order within each.
func Partition(records []Destination, now time.Time) (valid, expired []Destination) {
	for _, d := range records {
		if d.ExpiredAt(now) {
			expired = append(expired, d)
		} else {
			valid = append(valid, d)
		}
	}
	return valid, expired
}

// FormatRemaining renders the time left until expiry for display:
// "Expired" once past, otherwise whole hours and minutes truncated
// toward zero.
func (d Destination) FormatRemaining(now time.Time) string {
	if d.ExpiredAt(now) {
		return "Expired"
	}

	remaining := d.ExpiresAt.Sub(now)
	hours := int(remaining / time.Hour)
	minutes := int((remaining % time.Hour) / time.Minute)

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
