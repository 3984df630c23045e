// Package poller runs a background task on an adaptive cadence: the
// base interval while the task succeeds, doubling after consecutive
// failures up to a cap, and snapping back to base on the next success.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Poller manages one background task with an adaptive interval
type Poller struct {
	base time.Duration
	task func(context.Context) error

	policy *backoff.ExponentialBackOff

	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a Poller running task every base interval, backing off to
// at most max while the task keeps failing
func New(base, max time.Duration, task func(context.Context) error) *Poller {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = base
	policy.MaxInterval = max
	policy.Multiplier = 2
	policy.RandomizationFactor = 0 // exact cadence, no jitter
	policy.MaxElapsedTime = 0     // never give up

	p := &Poller{
		base:   base,
		task:   task,
		policy: policy,
	}
	p.resetPolicy()
	return p
}

// Start begins executing the task. When firstRunImmediately is set the
// task runs once before the first wait.
func (p *Poller) Start(ctx context.Context, firstRunImmediately bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.running = true

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		interval := p.base
		if firstRunImmediately {
			interval = p.runOnce(ctx)
		}

		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-timer.C:
				timer.Reset(p.runOnce(ctx))
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the poll loop and waits for the task to finish
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.running = false
}

// IsRunning reports whether the poll loop is active
func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// runOnce executes the task and returns the wait before the next run
func (p *Poller) runOnce(ctx context.Context) time.Duration {
	if ctx.Err() != nil {
		return p.base
	}
	return p.nextInterval(p.task(ctx) != nil)
}

// nextInterval advances the cadence policy: failures double the wait up
// to the cap, success resets it to base
func (p *Poller) nextInterval(failed bool) time.Duration {
	if !failed {
		p.resetPolicy()
		return p.base
	}

	next := p.policy.NextBackOff()
	if next == backoff.Stop {
		next = p.policy.MaxInterval
	}
	return next
}

// resetPolicy rewinds the backoff so the first failure after a success
// waits twice the base interval
func (p *Poller) resetPolicy() {
	p.policy.Reset()
	p.policy.NextBackOff() // consume the base step
}
