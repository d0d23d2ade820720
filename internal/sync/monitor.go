package sync

import (
	"context"
	stdsync "sync"
	"sync/atomic"

	"event-prep-engine/pkg/log"
)

// Monitor tracks whether the remote authority is reachable and fans
// state transitions out to subscribers. State changes come from the
// delivery layer (explicit connectivity callbacks) and from request
// outcomes observed by the repositories.
type Monitor struct {
	l      log.Logger
	online atomic.Bool

	mu   stdsync.Mutex
	subs []chan bool
}

func NewMonitor(l log.Logger, initiallyOnline bool) *Monitor {
	m := &Monitor{l: l}
	m.online.Store(initiallyOnline)
	return m
}

// Online reports the current connectivity state.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// SetOnline records a connectivity change. Subscribers are only
// notified on actual transitions; repeated reports of the same state
// are dropped.
func (m *Monitor) SetOnline(ctx context.Context, online bool) {
	if m.online.Swap(online) == online {
		return
	}
	if online {
		m.l.Info(ctx, "connectivity restored")
	} else {
		m.l.Warn(ctx, "connectivity lost, entering offline mode")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- online:
		default:
			// subscriber is behind, it will catch up on the next read of Online()
		}
	}
}

// Subscribe returns a channel that receives each state transition.
func (m *Monitor) Subscribe() <-chan bool {
	ch := make(chan bool, 4)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}
