package sync

import (
	"context"
	stdsync "sync"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/pkg/log"
)

// Coordinator drains pending local writes to the authority whenever
// connectivity is restored. Sources flush oldest-first; a failed push
// stops the whole pass so ordering is preserved and the remaining
// writes stay queued for the next attempt.
type Coordinator struct {
	l       log.Logger
	monitor *Monitor
	sources []PendingSource

	mu       stdsync.Mutex
	lastSync time.Time
	lastErr  error
}

func NewCoordinator(l log.Logger, monitor *Monitor, sources ...PendingSource) *Coordinator {
	return &Coordinator{
		l:       l,
		monitor: monitor,
		sources: sources,
	}
}

// Run blocks, flushing on every offline-to-online transition, until the
// context is cancelled. Intended to run in its own goroutine.
func (c *Coordinator) Run(ctx context.Context, sc model.Scope) {
	transitions := c.monitor.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case online := <-transitions:
			if !online {
				continue
			}
			if err := c.Flush(ctx, sc); err != nil {
				c.l.Warnf(ctx, "sync flush incomplete: %v", err)
			}
		}
	}
}

// Flush pushes pending writes upstream, oldest-first per source,
// stopping at the first failure.
func (c *Coordinator) Flush(ctx context.Context, sc model.Scope) error {
	if !c.monitor.Online() {
		return nil
	}

	var flushed int
	for _, src := range c.sources {
		for {
			more, err := src.FlushNext(ctx, sc)
			if err != nil {
				c.setResult(err)
				c.l.Warnf(ctx, "flush %s stopped after %d writes: %v", src.Name(), flushed, err)
				return err
			}
			if !more {
				break
			}
			flushed++
		}
	}

	c.setResult(nil)
	if flushed > 0 {
		c.l.Infof(ctx, "flushed %d pending writes", flushed)
	}
	return nil
}

func (c *Coordinator) setResult(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	if err == nil {
		c.lastSync = time.Now()
	}
}

// Status reports connectivity, queue depth, and the last flush outcome.
func (c *Coordinator) Status(ctx context.Context, sc model.Scope) Status {
	st := Status{Online: c.monitor.Online()}

	for _, src := range c.sources {
		n, err := src.PendingCount(ctx, sc)
		if err != nil {
			c.l.Warnf(ctx, "pending count for %s: %v", src.Name(), err)
			continue
		}
		st.PendingWrites += n
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	st.LastSyncAt = c.lastSync
	if c.lastErr != nil {
		st.LastError = c.lastErr.Error()
	}
	return st
}
