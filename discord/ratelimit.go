package discord

import (
	"context"
	"sync"
	"time"
)

// budgetWindow is the rolling interval the send budget is measured over.
const budgetWindow = time.Minute

// Budget enforces at most limit sends inside any rolling window. Wait blocks
// until a send slot is available and then claims it.
type Budget struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	sent   []time.Time

	// now and sleep are swapped out in tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewBudget creates a budget of limit sends per rolling minute. A limit of
// zero or less disables the budget.
func NewBudget(limit int) *Budget {
	return &Budget{
		limit:  limit,
		window: budgetWindow,
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

// Wait blocks until a send slot is free within the rolling window and claims
// it. It returns early with the context error on cancellation.
func (b *Budget) Wait(ctx context.Context) error {
	if b == nil || b.limit <= 0 {
		return ctx.Err()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := b.now()
		b.prune(now)
		if len(b.sent) < b.limit {
			b.sent = append(b.sent, now)
			return nil
		}

		// Oldest send ages out of the window first.
		wait := b.sent[0].Add(b.window).Sub(now)
		if err := b.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// prune drops send timestamps that fell out of the window.
func (b *Budget) prune(now time.Time) {
	cutoff := now.Add(-b.window)
	i := 0
	for i < len(b.sent) && !b.sent[i].After(cutoff) {
		i++
	}
	b.sent = b.sent[i:]
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
