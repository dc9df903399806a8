package goSignup

import (
	"context"
	"sync"
	"sync/atomic"
)

// auditDispatcher decouples the signup/login flows from the sink: flows
// enqueue, a single worker delivers. Delivery order matches enqueue
// order; the worker drains the queue before Close returns.
type auditDispatcher struct {
	sink       AuditSink
	dropIfFull bool

	queue   chan AuditEvent
	done    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Uint64
	closed  atomic.Bool
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if sink == nil {
		sink = NoOpSink{}
	}
	size := cfg.BufferSize
	if size <= 0 {
		size = 1
	}

	d := &auditDispatcher{
		sink:       sink,
		dropIfFull: cfg.DropIfFull,
		queue:      make(chan AuditEvent, size),
		done:       make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *auditDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		case <-d.done:
			d.drain()
			return
		}
	}
}

// drain delivers whatever is still queued at shutdown.
func (d *auditDispatcher) drain() {
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		default:
			return
		}
	}
}

// Emit enqueues one event. On a nil or closed dispatcher it is a no-op.
// With DropIfFull set a full queue increments the drop counter instead
// of blocking; otherwise Emit waits until there is room, the context
// ends, or the dispatcher shuts down.
func (d *auditDispatcher) Emit(ctx context.Context, event AuditEvent) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.dropIfFull {
		select {
		case d.queue <- event:
		case <-d.done:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.queue <- event:
	case <-ctx.Done():
	case <-d.done:
	}
}

// Close stops the worker after the queue is drained. Safe to call more
// than once and on a nil dispatcher.
func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}
	if !d.closed.CompareAndSwap(false, true) {
		return
	}
	close(d.done)
	d.wg.Wait()
}

// Dropped reports how many events were discarded because the queue was
// full. Exposed to hosts through [Engine.AuditDropped].
func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
