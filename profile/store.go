package profile

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	goSignup "github.com/MrEthical07/goSignup"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "up"

// RedisStore is a Redis-backed [goSignup.ProfileStore]. Documents are
// stored as JSON under "{prefix}:{uid}".
type RedisStore struct {
	redis     redis.UniversalClient
	keyPrefix string
}

// NewRedisStore describes the newredisstore operation and its observable behavior.
//
// NewRedisStore may return an error when input validation, dependency calls, or security checks fail.
// NewRedisStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRedisStore(client redis.UniversalClient, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{
		redis:     client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisStore) key(uid string) string {
	return s.keyPrefix + ":" + uid
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Save(ctx context.Context, profile goSignup.RegistrationProfile) error {
	if profile.UserID == "" {
		return errors.New("profile requires a UserID")
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, s.key(profile.UserID), raw, 0).Err()
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Get(ctx context.Context, uid string) (goSignup.RegistrationProfile, error) {
	raw, err := s.redis.Get(ctx, s.key(uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return goSignup.RegistrationProfile{}, goSignup.ErrProfileNotFound
	}
	if err != nil {
		return goSignup.RegistrationProfile{}, err
	}

	var profile goSignup.RegistrationProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return goSignup.RegistrationProfile{}, err
	}
	return profile, nil
}

// Delete describes the delete operation and its observable behavior.
//
// Delete may return an error when input validation, dependency calls, or security checks fail.
// Delete does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Delete(ctx context.Context, uid string) error {
	return s.redis.Del(ctx, s.key(uid)).Err()
}

// SetStatus updates only the status field of a stored profile. Intended
// for administrative review tooling.
func (s *RedisStore) SetStatus(ctx context.Context, uid string, status goSignup.ProfileStatus) error {
	profile, err := s.Get(ctx, uid)
	if err != nil {
		return err
	}
	profile.Status = status
	return s.Save(ctx, profile)
}

// MemoryStore is an in-memory [goSignup.ProfileStore] for tests and
// local wiring.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]goSignup.RegistrationProfile
}

// NewMemoryStore describes the newmemorystore operation and its observable behavior.
//
// NewMemoryStore may return an error when input validation, dependency calls, or security checks fail.
// NewMemoryStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]goSignup.RegistrationProfile),
	}
}

// Save describes the save operation and its observable behavior.
//
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Save(_ context.Context, profile goSignup.RegistrationProfile) error {
	if profile.UserID == "" {
		return errors.New("profile requires a UserID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}

// Get describes the get operation and its observable behavior.
//
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Get(_ context.Context, uid string) (goSignup.RegistrationProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[uid]
	if !ok {
		return goSignup.RegistrationProfile{}, goSignup.ErrProfileNotFound
	}
	return profile, nil
}

// Delete describes the delete operation and its observable behavior.
//
// Delete does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Delete(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, uid)
	return nil
}
