package destination

import (
	"reflect"
	"testing"
	"time"
)

var base = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func TestNewStampsTTLExactly(t *testing.T) {
	d := New("123 Main St", base, DefaultTTL)

	if d.CreatedAt != base {
		t.Errorf("CreatedAt = %v, want %v", d.CreatedAt, base)
	}
	if got := d.ExpiresAt.Sub(d.CreatedAt); got != DefaultTTL {
		t.Errorf("ExpiresAt - CreatedAt = %v, want %v", got, DefaultTTL)
	}
	if d.Address != "123 Main St" {
		t.Errorf("Address = %q", d.Address)
	}
}

func TestNewIDsStrictlyIncreasing(t *testing.T) {
	// Same instant on every call: ids must still never repeat.
	var prev int64
	for i := 0; i < 1000; i++ {
		d := New("X", base, DefaultTTL)
		if d.ID <= prev {
			t.Fatalf("id %d not greater than previous %d (iteration %d)", d.ID, prev, i)
		}
		prev = d.ID
	}
}

func TestExpiredAtBoundary(t *testing.T) {
	d := New("X", base, DefaultTTL)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before expiry", base.Add(time.Hour), false},
		{"exactly at expiry", d.ExpiresAt, false},
		{"one millisecond past", d.ExpiresAt.Add(time.Millisecond), true},
		{"long past", d.ExpiresAt.Add(24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.ExpiredAt(tt.now); got != tt.want {
				t.Errorf("ExpiredAt(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestEndToEndSixHourTTL(t *testing.T) {
	d := New("X", base, 6*time.Hour)

	if d.ExpiredAt(base.Add(6 * time.Hour)) {
		t.Error("record expired exactly at TTL boundary")
	}
	if !d.ExpiredAt(base.Add(6*time.Hour + time.Millisecond)) {
		t.Error("record not expired 1ms past TTL")
	}
}

func TestPartition(t *testing.T) {
	now := base.Add(3 * time.Hour)
	d1 := New("expired one", base.Add(-12*time.Hour), DefaultTTL)
	d2 := New("still valid", base, DefaultTTL)
	d3 := New("expired two", base.Add(-10*time.Hour), DefaultTTL)

	valid, expired := Partition([]Destination{d1, d2, d3}, now)

	if len(valid) != 1 || valid[0].ID != d2.ID {
		t.Errorf("valid = %+v, want only %d", valid, d2.ID)
	}
	if len(expired) != 2 || expired[0].ID != d1.ID || expired[1].ID != d3.ID {
		t.Errorf("expired = %+v, want [%d %d] in order", expired, d1.ID, d3.ID)
	}
	if len(valid)+len(expired) != 3 {
		t.Errorf("partition lost records: %d + %d != 3", len(valid), len(expired))
	}
}

func TestPartitionEmpty(t *testing.T) {
	valid, expired := Partition(nil, base)
	if len(valid) != 0 || len(expired) != 0 {
		t.Errorf("Partition(nil) = %v, %v, want empty, empty", valid, expired)
	}
}

func TestPartitionIdempotent(t *testing.T) {
	now := base.Add(time.Hour)
	records := []Destination{
		New("a", base.Add(-12*time.Hour), DefaultTTL),
		New("b", base, DefaultTTL),
		New("c", base.Add(-time.Hour), DefaultTTL),
	}

	v1, e1 := Partition(records, now)
	v2, e2 := Partition(records, now)

	if !reflect.DeepEqual(v1, v2) || !reflect.DeepEqual(e1, e2) {
		t.Error("partition not idempotent for a fixed now")
	}
}

func TestFormatRemaining(t *testing.T) {
	d := New("X", base, 6*time.Hour)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"hours and minutes", base.Add(30 * time.Minute), "5h 30m"},
		{"minutes only", base.Add(5*time.Hour + 15*time.Minute), "45m"},
		{"truncates partial minutes", base.Add(5*time.Hour + 15*time.Minute + 30*time.Second), "44m"},
		{"expired", base.Add(7 * time.Hour), "Expired"},
		{"boundary is not expired", base.Add(6 * time.Hour), "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.FormatRemaining(tt.now); got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}
