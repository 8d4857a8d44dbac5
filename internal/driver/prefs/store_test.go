package prefs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"driver-hub/internal/driver/destination"
	"driver-hub/internal/shared/util"
)

type memKV struct {
	data    map[string]string
	setErr  error
	getErrs map[string]error
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string), getErrs: make(map[string]error)}
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	if err, ok := m.getErrs[key]; ok {
		return "", err
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestStore(kv KV, now time.Time) *Store {
	s := NewStore(kv, util.New())
	s.now = func() time.Time { return now }
	return s
}

func TestLoadEmptyDriver(t *testing.T) {
	base := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	s := newTestStore(newMemKV(), base)

	got, err := s.Load(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load on empty store = %+v, want empty", got)
	}
}

func TestSaveThenLoad(t *testing.T) {
	base := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	s := newTestStore(newMemKV(), base)
	ctx := context.Background()

	d1 := destination.New("Airport", base, destination.DefaultTTL)
	d2 := destination.New("Downtown", base, destination.DefaultTTL)

	if err := s.Save(ctx, "driver-1", []destination.Destination{d1, d2}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx, "driver-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].ID != d1.ID || got[1].ID != d2.ID {
		t.Errorf("Load = %+v, want [%d %d] in order", got, d1.ID, d2.ID)
	}
}

func TestLoadPrunesExpired(t *testing.T) {
	base := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	kv := newMemKV()
	ctx := context.Background()

	stale := destination.New("Old airport run", base.Add(-12*time.Hour), destination.DefaultTTL)
	fresh := destination.New("Downtown", base.Add(-time.Hour), destination.DefaultTTL)

	writer := newTestStore(kv, base)
	if err := writer.Save(ctx, "driver-1", []destination.Destination{stale, fresh}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var droppedIDs []int64
	s := newTestStore(kv, base)
	s.OnDropped(func(driverID string, d destination.Destination) {
		droppedIDs = append(droppedIDs, d.ID)
	})

	got, err := s.Load(ctx, "driver-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].ID != fresh.ID {
		t.Errorf("Load = %+v, want only the fresh record", got)
	}
	if len(droppedIDs) != 1 || droppedIDs[0] != stale.ID {
		t.Errorf("dropped callback saw %v, want [%d]", droppedIDs, stale.ID)
	}

	// The pruned list must have been persisted: a second load with a
	// fresh store sees only the valid record and drops nothing.
	droppedIDs = nil
	again, err := newTestStore(kv, base).Load(ctx, "driver-1")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(again) != 1 {
		t.Errorf("second Load = %+v, want 1 record", again)
	}
}

func TestLoadSwallowsWriteBackFailure(t *testing.T) {
	base := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	kv := newMemKV()
	ctx := context.Background()

	stale := destination.New("A", base.Add(-12*time.Hour), destination.DefaultTTL)
	fresh := destination.New("B", base, destination.DefaultTTL)

	if err := newTestStore(kv, base).Save(ctx, "driver-1", []destination.Destination{stale, fresh}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	kv.setErr = errors.New("redis down")

	s := newTestStore(kv, base)
	called := false
	s.OnDropped(func(string, destination.Destination) { called = true })

	got, err := s.Load(ctx, "driver-1")
	if err != nil {
		t.Fatalf("Load should not surface persistence failure, got %v", err)
	}
	if len(got) != 1 || got[0].ID != fresh.ID {
		t.Errorf("Load = %+v, want the valid record despite write failure", got)
	}
	if called {
		t.Error("dropped callback fired even though the prune was not persisted")
	}
}

func TestUpdatePrunesBeforeFn(t *testing.T) {
	base := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	kv := newMemKV()
	ctx := context.Background()

	stale := destination.New("Old run", base.Add(-12*time.Hour), destination.DefaultTTL)
	fresh := destination.New("Downtown", base.Add(-time.Hour), destination.DefaultTTL)

	if err := newTestStore(kv, base).Save(ctx, "driver-1", []destination.Destination{stale, fresh}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s := newTestStore(kv, base)
	var droppedIDs []int64
	s.OnDropped(func(_ string, d destination.Destination) {
		droppedIDs = append(droppedIDs, d.ID)
	})

	added := destination.New("Airport", base, destination.DefaultTTL)
	err := s.Update(ctx, "driver-1", func(records []destination.Destination) ([]destination.Destination, error) {
		if len(records) != 1 || records[0].ID != fresh.ID {
			t.Errorf("fn saw %+v, want only the fresh record", records)
		}
		return append(records, added), nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(droppedIDs) != 1 || droppedIDs[0] != stale.ID {
		t.Errorf("dropped callback saw %v, want [%d]", droppedIDs, stale.ID)
	}

	got, err := s.Load(ctx, "driver-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].ID != fresh.ID || got[1].ID != added.ID {
		t.Errorf("Load = %+v, want [fresh added]", got)
	}
}

func TestUpdateErrorWritesNothing(t *testing.T) {
	base := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	kv := newMemKV()
	ctx := context.Background()
	s := newTestStore(kv, base)

	d := destination.New("Keep me", base, destination.DefaultTTL)
	if err := s.Save(ctx, "driver-1", []destination.Destination{d}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	wantErr := errors.New("list is full")
	err := s.Update(ctx, "driver-1", func([]destination.Destination) ([]destination.Destination, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Update err = %v, want %v", err, wantErr)
	}

	got, err := s.Load(ctx, "driver-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].ID != d.ID {
		t.Errorf("list changed after failed update: %+v", got)
	}
}

// Concurrent writers checking a cap inside Update must never overshoot
// it: the read, the check, and the write all happen under one lock.
func TestUpdateSerializesCapCheck(t *testing.T) {
	base := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	kv := newMemKV()
	ctx := context.Background()
	s := newTestStore(kv, base)

	errFull := errors.New("list is full")
	const writers = 12

	var wg sync.WaitGroup
	var admitted atomic.Int64
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.Update(ctx, "driver-1", func(records []destination.Destination) ([]destination.Destination, error) {
				if len(records) >= destination.MaxPerDriver {
					return nil, errFull
				}
				return append(records, destination.New(fmt.Sprintf("Stop %d", i), base, destination.DefaultTTL)), nil
			})
			if err == nil {
				admitted.Add(1)
			} else if !errors.Is(err, errFull) {
				t.Errorf("Update: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if admitted.Load() != int64(destination.MaxPerDriver) {
		t.Errorf("admitted = %d, want %d", admitted.Load(), destination.MaxPerDriver)
	}
	got, err := s.Load(ctx, "driver-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != destination.MaxPerDriver {
		t.Errorf("list length = %d, want %d", len(got), destination.MaxPerDriver)
	}
}

func TestSaveEmptyListClearsKey(t *testing.T) {
	base := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	kv := newMemKV()
	ctx := context.Background()
	s := newTestStore(kv, base)

	d := destination.New("X", base, destination.DefaultTTL)
	if err := s.Save(ctx, "driver-1", []destination.Destination{d}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "driver-1", nil); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	if _, ok := kv.data[key("driver-1")]; ok {
		t.Error("empty save left the key behind")
	}
}
