//go:build integration
// +build integration

package test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrEthical07/goSignup/session"
)

// TestStoreCorruptPayloadSurfacesCorruptError ensures a mangled Redis value is
// reported as corruption rather than a silent miss.
func TestStoreCorruptPayloadSurfacesCorruptError(t *testing.T) {
	store, mr, _, cleanup := newIntegrationStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, makeSession("u1", "sid-corrupt"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mangle the payload behind the store's back.
	if err := mr.Set("ss:sid-corrupt", "{not json"); err != nil {
		t.Fatalf("mangle: %v", err)
	}

	if _, err := store.Get(ctx, "sid-corrupt"); !errors.Is(err, session.ErrSessionCorrupt) {
		t.Fatalf("expected ErrSessionCorrupt, got %v", err)
	}
}

func TestStoreMissingSessionIsNotFound(t *testing.T) {
	store, _, _, cleanup := newIntegrationStore(t)
	defer cleanup()

	if _, err := store.Get(context.Background(), "never-saved"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	store, _, _, cleanup := newIntegrationStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, makeSession("u1", "sid-gone"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "sid-gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "sid-gone"); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
}

func TestStoreTouchMissingSession(t *testing.T) {
	store, _, _, cleanup := newIntegrationStore(t)
	defer cleanup()

	if err := store.Touch(context.Background(), "never-saved", time.Hour); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

// TestStoreExpiryRemovesSession drives miniredis time forward past the TTL.
func TestStoreExpiryRemovesSession(t *testing.T) {
	store, mr, _, cleanup := newIntegrationStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, makeSession("u1", "sid-exp"), time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, "sid-exp"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}
