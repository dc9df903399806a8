//go:build integration
// +build integration

package test

import (
	"testing"
	"time"

	"github.com/MrEthical07/goSignup/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newIntegrationStore(t *testing.T) (*session.Store, *miniredis.Miniredis, *redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := session.NewStore(rdb, "ss")

	return store, mr, rdb, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

func makeSession(userID, sessionID string) *session.Session {
	now := time.Now()

	return &session.Session{
		SessionID:     sessionID,
		UID:           userID,
		Email:         userID + "@example.com",
		EmailVerified: true,
		DisplayName:   "Ana",
		CreatedAt:     now.Unix(),
		ExpiresAt:     now.Add(time.Hour).Unix(),
	}
}
