// Package ratelimit paces API requests to stay under the Dynalist quota of
// 30 document reads per minute.
package ratelimit

import (
	"context"
	"time"
)

// Defaults for doc/read pacing: after every 20 reads, pause a full minute.
const (
	DefaultBatch = 20
	DefaultPause = 60 * time.Second
)

// Waiter gates a sequence of requests.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Pacer is a static batch throttle. It never reacts to rate-limit responses;
// it only paces proactively.
type Pacer struct {
	batch int
	pause time.Duration
	count int
	sleep func(context.Context, time.Duration) error
}

// New creates a Pacer that sleeps pause after every batch calls to Wait.
func New(batch int, pause time.Duration) *Pacer {
	return &Pacer{batch: batch, pause: pause, sleep: sleepCtx}
}

// Default returns a Pacer with the doc/read quota defaults.
func Default() *Pacer {
	return New(DefaultBatch, DefaultPause)
}

// Wait blocks until the next request may be issued. The first request of
// each batch window proceeds immediately; the request after a full batch
// waits out the pause first. Context cancellation aborts the wait.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.count > 0 && p.count%p.batch == 0 {
		if err := p.sleep(ctx, p.pause); err != nil {
			return err
		}
	}
	p.count++
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
