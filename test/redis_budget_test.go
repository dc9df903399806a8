//go:build integration
// +build integration

package test

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrEthical07/goSignup/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// cmdCounter is a go-redis Hook that counts the number of Redis round-trips
// (individual commands and pipeline calls).
type cmdCounter struct {
	commands  atomic.Int64
	pipelines atomic.Int64
}

func (h *cmdCounter) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *cmdCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.commands.Add(1)
		return next(ctx, cmd)
	}
}

func (h *cmdCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		// Each pipeline call is one network round-trip regardless of command count.
		h.pipelines.Add(1)
		h.commands.Add(int64(len(cmds)))
		return next(ctx, cmds)
	}
}

func (h *cmdCounter) Reset() {
	h.commands.Store(0)
	h.pipelines.Store(0)
}

func (h *cmdCounter) Commands() int64  { return h.commands.Load() }
func (h *cmdCounter) Pipelines() int64 { return h.pipelines.Load() }

// newCountedStore creates a session.Store backed by miniredis with a
// cmdCounter hook installed. Reset the counter before each measured operation.
func newCountedStore(t *testing.T) (*session.Store, *redis.Client, *cmdCounter, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	counter := &cmdCounter{}
	rdb.AddHook(counter)

	// Warm the connection: go-redis may emit extra commands on first use
	// (handshake, AUTH, SELECT, CLIENT SETNAME, etc.). Issuing a PING
	// before measuring avoids counting that noise.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("warmup ping: %v", err)
	}

	counter.Reset()

	store := session.NewStore(rdb, "ss")
	return store, rdb, counter, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

// TestSessionSaveRedisBudget verifies that saving a session is a single SET.
func TestSessionSaveRedisBudget(t *testing.T) {
	store, _, counter, cleanup := newCountedStore(t)
	defer cleanup()

	ctx := context.Background()

	counter.Reset()

	if err := store.Save(ctx, makeSession("uid-1", "sid-save"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	cmds := counter.Commands()
	if cmds > 1 {
		t.Errorf("Store.Save used %d Redis commands; budget is 1 (SET)", cmds)
	}
	t.Logf("Store.Save: %d commands, %d pipelines", cmds, counter.Pipelines())
}

// TestSessionGetRedisBudget verifies that reading a session is a single GET.
func TestSessionGetRedisBudget(t *testing.T) {
	store, _, counter, cleanup := newCountedStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, makeSession("uid-2", "sid-get"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	counter.Reset()

	if _, err := store.Get(ctx, "sid-get"); err != nil {
		t.Fatalf("get: %v", err)
	}

	cmds := counter.Commands()
	if cmds > 1 {
		t.Errorf("Store.Get used %d Redis commands; budget is 1 (GET)", cmds)
	}
	t.Logf("Store.Get: %d commands, %d pipelines", cmds, counter.Pipelines())
}

// TestSessionTouchRedisBudget verifies that sliding expiration is a single EXPIRE.
func TestSessionTouchRedisBudget(t *testing.T) {
	store, _, counter, cleanup := newCountedStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, makeSession("uid-3", "sid-touch"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	counter.Reset()

	if err := store.Touch(ctx, "sid-touch", 2*time.Hour); err != nil {
		t.Fatalf("touch: %v", err)
	}

	cmds := counter.Commands()
	if cmds > 1 {
		t.Errorf("Store.Touch used %d Redis commands; budget is 1 (EXPIRE)", cmds)
	}
	t.Logf("Store.Touch: %d commands, %d pipelines", cmds, counter.Pipelines())
}

// TestSessionDeleteRedisBudget verifies that logout is a single DEL.
func TestSessionDeleteRedisBudget(t *testing.T) {
	store, _, counter, cleanup := newCountedStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, makeSession("uid-4", "sid-del"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	counter.Reset()

	if err := store.Delete(ctx, "sid-del"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	cmds := counter.Commands()
	if cmds > 1 {
		t.Errorf("Store.Delete used %d Redis commands; budget is 1 (DEL)", cmds)
	}
	t.Logf("Store.Delete: %d commands, %d pipelines", cmds, counter.Pipelines())
}
