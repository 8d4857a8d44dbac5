package otp

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"driver-hub/internal/shared/apperrors"
)

const (
	// CodeTTL is how long an issued code stays verifiable.
	CodeTTL = 5 * time.Minute

	// MaxAttempts caps failed verifications per issued code.
	MaxAttempts = 3
)

// Store keeps issued verification codes in Redis, keyed by purpose and
// phone number, with the TTL handled by Redis itself.
type Store struct {
	rdb *goredis.Client
}

func NewStore(rdb *goredis.Client) *Store {
	return &Store{rdb: rdb}
}

func codeKey(purpose, phone string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, phone)
}

func attemptsKey(purpose, phone string) string {
	return codeKey(purpose, phone) + ":attempts"
}

// Issue stores a fresh code for the phone/purpose pair, replacing any
// outstanding one and resetting the attempt counter.
func (s *Store) Issue(ctx context.Context, purpose, phone, code string) error {
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, codeKey(purpose, phone), code, CodeTTL)
	pipe.Del(ctx, attemptsKey(purpose, phone))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}
	return nil
}

// Verify checks a candidate code. On success the code is consumed; on
// mismatch the attempt counter grows and the code is revoked once
// MaxAttempts is hit.
func (s *Store) Verify(ctx context.Context, purpose, phone, candidate string) error {
	stored, err := s.rdb.Get(ctx, codeKey(purpose, phone)).Result()
	if err == goredis.Nil {
		return apperrors.ErrOTPExpired
	}
	if err != nil {
		return fmt.Errorf("read verification code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) != 1 {
		attempts, err := s.rdb.Incr(ctx, attemptsKey(purpose, phone)).Result()
		if err != nil {
			return fmt.Errorf("count verification attempt: %w", err)
		}
		s.rdb.Expire(ctx, attemptsKey(purpose, phone), CodeTTL)

		if attempts >= MaxAttempts {
			s.revoke(ctx, purpose, phone)
			return apperrors.ErrTooManyAttempts
		}
		return apperrors.ErrOTPMismatch
	}

	s.revoke(ctx, purpose, phone)
	return nil
}

func (s *Store) revoke(ctx context.Context, purpose, phone string) {
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, codeKey(purpose, phone))
	pipe.Del(ctx, attemptsKey(purpose, phone))
	pipe.Exec(ctx)
}
