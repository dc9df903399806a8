package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is an exported constant or variable used by the signup engine.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionCorrupt is returned when a stored session blob fails to decode.
var ErrSessionCorrupt = errors.New("session corrupt")

// ErrRedisUnavailable is an exported constant or variable used by the signup engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

const minTTL = time.Second

// Store defines a public type used by goSignup APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	redis     redis.UniversalClient
	keyPrefix string
}

// NewStore describes the newstore operation and its observable behavior.
//
// NewStore may return an error when input validation, dependency calls, or security checks fail.
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStore(redisClient redis.UniversalClient, keyPrefix string) *Store {
	if keyPrefix == "" {
		keyPrefix = "ss"
	}
	return &Store{
		redis:     redisClient,
		keyPrefix: keyPrefix,
	}
}

// Save persists the session under its ID with the given TTL. TTLs below one
// second are raised to one second so the key never persists forever.
func (s *Store) Save(ctx context.Context, sess *Session, ttl time.Duration) error {
	if sess == nil || sess.SessionID == "" {
		return errors.New("session id required")
	}
	if ttl < minTTL {
		ttl = minTTL
	}

	blob, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.redis.Set(ctx, s.key(sess.SessionID), blob, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Get loads a session by ID. Expired or missing sessions return
// ErrSessionNotFound; undecodable blobs return ErrSessionCorrupt.
func (s *Store) Get(ctx context.Context, sessionID string) (*Session, error) {
	blob, err := s.redis.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(blob, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionCorrupt, err)
	}
	if sess.ExpiresAt != 0 && sess.ExpiresAt <= time.Now().Unix() {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Touch extends a live session's TTL without rewriting the blob.
func (s *Store) Touch(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl < minTTL {
		ttl = minTTL
	}

	ok, err := s.redis.Expire(ctx, s.key(sessionID), ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *Store) key(sessionID string) string {
	return s.keyPrefix + ":" + sessionID
}
