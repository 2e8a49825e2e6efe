package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// Revalidator refreshes cached server data. *cache.Library satisfies it.
type Revalidator interface {
	RevalidateAll(ctx context.Context) error
}

// Poller keeps the client caches fresh while the UI runs.
type Poller struct {
	target   Revalidator
	interval time.Duration
	logger   *zap.Logger
	failures int
}

// NewPoller creates a poller. A non-positive interval uses the default.
func NewPoller(target Revalidator, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{target: target, interval: interval, logger: logger}
}

// StartPoller launches a background goroutine that revalidates target at a
// fixed cadence, backing off while the server is unreachable. It returns
// immediately.
func StartPoller(ctx context.Context, target Revalidator, interval time.Duration, logger *zap.Logger) *Poller {
	p := NewPoller(target, interval, logger)
	go p.run(ctx)
	return p
}

func (p *Poller) run(ctx context.Context) {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		timer.Reset(p.poll(ctx))
	}
}

// poll runs one revalidation and returns the delay before the next one.
func (p *Poller) poll(ctx context.Context) time.Duration {
	reqCtx, cancel := context.WithTimeout(ctx, p.interval+5*time.Second)
	defer cancel()

	if err := p.target.RevalidateAll(reqCtx); err != nil {
		if ctx.Err() != nil {
			return p.interval
		}
		p.failures++
		next := calculateBackoff(p.failures, p.interval)
		// Log the first failure and then every fifth to keep the file small.
		if p.failures == 1 || p.failures%5 == 0 {
			p.logger.Warn("revalidate failed",
				zap.Int("failures", p.failures),
				zap.Duration("retry_in", next),
				zap.Error(err))
		}
		return next
	}
	if p.failures > 0 {
		p.logger.Info("server reachable again", zap.Int("after_failures", p.failures))
	}
	p.failures = 0
	return p.interval
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	delay := base
	for range failures {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
