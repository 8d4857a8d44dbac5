package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"driver-hub/internal/driver/destination"
	"driver-hub/internal/shared/util"
)

// KV is the slice of key-value storage the preference store needs. The
// Redis client satisfies it in production; tests run on an in-memory map.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// ErrNotFound is returned by KV.Get when the key holds nothing.
var ErrNotFound = goredis.Nil

type redisKV struct {
	rdb *goredis.Client
}

func NewRedisKV(rdb *goredis.Client) KV {
	return &redisKV{rdb: rdb}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	return r.rdb.Get(ctx, key).Result()
}

func (r *redisKV) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, key, value, 0).Err()
}

func (r *redisKV) Del(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

// DroppedFunc is called once per destination pruned during Load, after
// the pruned list has been persisted back.
type DroppedFunc func(driverID string, d destination.Destination)

// Store owns the authoritative destination list per driver. Loads prune
// expired records and write the survivors back; saves replace the whole
// list atomically. Read-modify-write cycles against the same driver are
// serialized with a per-driver mutex.
type Store struct {
	kv        KV
	logger    *util.Logger
	now       func() time.Time
	onDropped DroppedFunc

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(kv KV, logger *util.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

// OnDropped registers a callback for pruned destinations. Must be set
// before the store is shared between goroutines.
func (s *Store) OnDropped(fn DroppedFunc) {
	s.onDropped = fn
}

func (s *Store) driverLock(driverID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[driverID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[driverID] = lock
	}
	return lock
}

func key(driverID string) string {
	return "driver:" + driverID + ":destinations"
}

// Load returns the driver's still-valid destinations. Expired records
// are dropped from the persisted list as a side effect; the write-back
// is best effort and a failure only gets logged.
func (s *Store) Load(ctx context.Context, driverID string) ([]destination.Destination, error) {
	lock := s.driverLock(driverID)
	lock.Lock()
	defer lock.Unlock()

	records, err := s.read(ctx, driverID)
	if err != nil {
		return nil, err
	}

	valid, expired := destination.Partition(records, s.now())
	if len(expired) == 0 {
		return valid, nil
	}

	for _, d := range expired {
		s.logger.Info("PrefsStore", fmt.Sprintf("dropping expired destination [driver_id=%s, id=%d, address=%s, expired_at=%s]",
			driverID, d.ID, d.Address, d.ExpiresAt.Format(time.RFC3339)))
	}

	if err := s.write(ctx, driverID, valid); err != nil {
		// Persistence failures are not surfaced to the caller; the next
		// load prunes again.
		s.logger.Error("PrefsStore", fmt.Errorf("failed to persist pruned destinations for driver %s: %w", driverID, err))
	} else if s.onDropped != nil {
		for _, d := range expired {
			s.onDropped(driverID, d)
		}
	}

	return valid, nil
}

// Update runs fn over the driver's still-valid destinations and
// persists what fn returns, all under the driver's lock, so checks fn
// makes against the list (the per-driver cap, membership) cannot race
// with another writer. Expired records are pruned before fn sees the
// list. If fn returns an error nothing is written.
func (s *Store) Update(ctx context.Context, driverID string, fn func([]destination.Destination) ([]destination.Destination, error)) error {
	lock := s.driverLock(driverID)
	lock.Lock()
	defer lock.Unlock()

	records, err := s.read(ctx, driverID)
	if err != nil {
		return err
	}

	valid, expired := destination.Partition(records, s.now())

	next, err := fn(valid)
	if err != nil {
		return err
	}

	if err := s.write(ctx, driverID, next); err != nil {
		return err
	}

	for _, d := range expired {
		s.logger.Info("PrefsStore", fmt.Sprintf("dropping expired destination [driver_id=%s, id=%d, address=%s, expired_at=%s]",
			driverID, d.ID, d.Address, d.ExpiresAt.Format(time.RFC3339)))
		if s.onDropped != nil {
			s.onDropped(driverID, d)
		}
	}

	return nil
}

// Save replaces the driver's whole destination list.
func (s *Store) Save(ctx context.Context, driverID string, records []destination.Destination) error {
	lock := s.driverLock(driverID)
	lock.Lock()
	defer lock.Unlock()

	return s.write(ctx, driverID, records)
}

// Clear removes the driver's destination list entirely.
func (s *Store) Clear(ctx context.Context, driverID string) error {
	lock := s.driverLock(driverID)
	lock.Lock()
	defer lock.Unlock()

	return s.kv.Del(ctx, key(driverID))
}

func (s *Store) read(ctx context.Context, driverID string) ([]destination.Destination, error) {
	raw, err := s.kv.Get(ctx, key(driverID))
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("read destinations for driver %s: %w", driverID, err)
	}

	var records []destination.Destination
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode destinations for driver %s: %w", driverID, err)
	}
	return records, nil
}

func (s *Store) write(ctx context.Context, driverID string, records []destination.Destination) error {
	if len(records) == 0 {
		return s.kv.Del(ctx, key(driverID))
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode destinations for driver %s: %w", driverID, err)
	}
	return s.kv.Set(ctx, key(driverID), string(raw))
}
