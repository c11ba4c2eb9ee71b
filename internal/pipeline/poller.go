// Package pipeline drives the fetch-filter-parse-store poll cycle.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/spotter-report-loader/internal/domain"
	"github.com/couchcryptid/spotter-report-loader/internal/feed"
	"github.com/couchcryptid/spotter-report-loader/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Fetcher returns the full current feed body.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// ReportParser converts one raw report line into an event. A nil event with
// a nil error marks a suppressed report.
type ReportParser interface {
	Parse(line string) (*domain.Event, error)
}

// EventStore hands a structured event to the downstream store.
type EventStore interface {
	PutEvent(ctx context.Context, event *domain.Event) error
}

// Poller runs the poll cycle on a fixed interval, forever, tolerating fetch
// failures. It exclusively owns the fingerprint set, replacing it wholesale
// after every successful fetch; sets are never unioned across cycles, so
// memory stays bounded by the feed's sliding window.
type Poller struct {
	fetcher  Fetcher
	parser   ReportParser
	store    EventStore
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock
	interval time.Duration
	seen     feed.FingerprintSet
	ready    atomic.Bool
}

// New creates a Poller with the given collaborators and poll interval.
func New(f Fetcher, p ReportParser, s EventStore, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, interval time.Duration) *Poller {
	return &Poller{
		fetcher:  f,
		parser:   p,
		store:    s,
		logger:   logger,
		metrics:  metrics,
		clock:    clock,
		interval: interval,
		seen:     make(feed.FingerprintSet),
	}
}

// CheckReadiness returns nil once the poller has completed at least one
// successful cycle.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("poller has not completed a cycle yet")
	}
	return nil
}

// Run executes poll cycles until the context is cancelled. A failed cycle
// never stops the loop; the next attempt happens on the next tick.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "interval", p.interval)
	p.metrics.PollerRunning.Set(1)
	defer p.metrics.PollerRunning.Set(0)

	for {
		p.runCycle(ctx)

		if !p.waitForNextTick(ctx) {
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// runCycle performs one fetch-filter-parse-store pass. On fetch failure the
// fingerprint set is left untouched so the missed reports surface as new on
// the next successful poll.
func (p *Poller) runCycle(ctx context.Context) {
	start := p.clock.Now()

	body, err := p.fetcher.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn("fetch reports failed", "error", err)
		p.metrics.Polls.WithLabelValues("fetch_error").Inc()
		return
	}

	latest, fresh := feed.DetectNew(body, p.seen)
	p.seen = latest

	p.metrics.ReportsTracked.Set(float64(len(latest)))
	p.metrics.ReportsNew.Add(float64(len(fresh)))

	for _, line := range fresh {
		p.processLine(ctx, line)
	}

	p.metrics.Polls.WithLabelValues("success").Inc()
	p.metrics.PollDuration.Observe(p.clock.Since(start).Seconds())
	p.ready.Store(true)
}

// processLine parses one new report line and stores the resulting event.
// Every line's outcome is independent; parse and store failures are logged
// and skipped.
func (p *Poller) processLine(ctx context.Context, line string) {
	event, err := p.parser.Parse(line)
	if err != nil {
		p.logger.Warn("parse report failed", "error", err)
		p.metrics.ParseErrors.Inc()
		return
	}
	if event == nil {
		p.metrics.ReportsSuppressed.Inc()
		return
	}

	if err := p.store.PutEvent(ctx, event); err != nil {
		p.logger.Error("store event failed", "error", err, "title", event.Title)
		p.metrics.StoreErrors.Inc()
		return
	}

	p.metrics.EventsStored.Inc()
	p.logger.Info("stored event", "title", event.Title)
}

// waitForNextTick sleeps one poll interval on the injected clock. Returns
// false when the context is cancelled first.
func (p *Poller) waitForNextTick(ctx context.Context) bool {
	timer := p.clock.NewTimer(p.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
