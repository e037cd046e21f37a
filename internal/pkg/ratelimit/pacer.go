package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum spacing between successive calls. The outbound
// message channel has a hard per-second limit, so sends go through one of
// these instead of sleeping at call sites.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer spaces calls at least one interval apart. Safe for
// concurrent use; waiters are serialized onto successive slots.
type IntervalPacer struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	return &IntervalPacer{interval: interval}
}

func (p *IntervalPacer) Wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return ctx.Err()
	}

	p.mu.Lock()
	now := time.Now()
	slot := p.next
	if slot.Before(now) {
		slot = now
	}
	p.next = slot.Add(p.interval)
	p.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Nop is a pacer that never waits, for tests and disabled throttling.
type Nop struct{}

func (Nop) Wait(ctx context.Context) error { return ctx.Err() }
