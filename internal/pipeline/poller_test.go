package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/spotter-report-loader/internal/domain"
	"github.com/couchcryptid/spotter-report-loader/internal/observability"
	"github.com/couchcryptid/spotter-report-loader/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	windAge3  = `Icon: 43.112000,-94.639999,000,3,5,"Reported By: Test Human\nHigh Wind\nTime: 2018-09-20 22:52:00 UTC\n60 mph [Measured]\nNotes: Strong winds measured at 60mph with anemometer"`
	windAge4  = `Icon: 43.112000,-94.639999,000,4,5,"Reported By: Test Human\nHigh Wind\nTime: 2018-09-20 22:52:00 UTC\n60 mph [Measured]\nNotes: Strong winds measured at 60mph with anemometer"`
	hailNone  = `Icon: 47.617706,-111.215248,000,4,4,"Reported By: Test Human\nHail\nTime: 2018-09-20 22:49:29 UTC\nSize: 0.75" (Penny)\nNotes: None"`
	otherNone = `Icon: 35.851399,-90.708198,000,3,8,"Reported By: Test Human\nOther - See Note\nTime: 2018-11-14 20:22:00 UTC\nNotes: None"`
	garbage   = `Icon: garbage that matches no pattern`
)

// --- mocks ---

// mockFetcher serves each body once, repeating the last one forever.
// A nil bodies slice means every fetch fails.
type mockFetcher struct {
	bodies []string
	calls  atomic.Int64
}

func (m *mockFetcher) Fetch(_ context.Context) (string, error) {
	i := int(m.calls.Add(1) - 1)
	if len(m.bodies) == 0 {
		return "", errors.New("connection refused")
	}
	if i >= len(m.bodies) {
		i = len(m.bodies) - 1
	}
	return m.bodies[i], nil
}

type mockStore struct {
	events []*domain.Event
	err    error
}

func (m *mockStore) PutEvent(_ context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPoller(f pipeline.Fetcher, s pipeline.EventStore) *pipeline.Poller {
	return pipeline.New(
		f,
		domain.NewParser(),
		s,
		discardLogger(),
		observability.NewMetricsForTesting(),
		clockwork.NewRealClock(),
		10*time.Millisecond,
	)
}

// runFor runs the poller until the timeout elapses.
func runFor(t *testing.T, p *pipeline.Poller, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	require.NoError(t, p.Run(ctx))
}

// --- tests ---

func TestPoller_Run_StoresNewReports(t *testing.T) {
	fetcher := &mockFetcher{bodies: []string{windAge3 + "\n" + hailNone}}
	store := &mockStore{}
	p := newPoller(fetcher, store)

	runFor(t, p, 100*time.Millisecond)

	require.Len(t, store.events, 2)
	assert.NoError(t, p.CheckReadiness(context.Background()))

	titles := []string{store.events[0].Title, store.events[1].Title}
	assert.Contains(t, titles, "Report: Wind")
	assert.Contains(t, titles, "Report: Hail")
}

func TestPoller_Run_DedupesAcrossCycles(t *testing.T) {
	// Same report every poll; multiple cycles fit in the run window.
	fetcher := &mockFetcher{bodies: []string{windAge3}}
	store := &mockStore{}
	p := newPoller(fetcher, store)

	runFor(t, p, 100*time.Millisecond)

	assert.Greater(t, fetcher.calls.Load(), int64(1), "expected several poll cycles")
	assert.Len(t, store.events, 1)
}

func TestPoller_Run_AgedReportIsNotReprocessed(t *testing.T) {
	fetcher := &mockFetcher{bodies: []string{windAge3, windAge4}}
	store := &mockStore{}
	p := newPoller(fetcher, store)

	runFor(t, p, 100*time.Millisecond)

	assert.Len(t, store.events, 1)
}

func TestPoller_Run_SuppressedReportsAreNotStored(t *testing.T) {
	fetcher := &mockFetcher{bodies: []string{otherNone}}
	store := &mockStore{}
	p := newPoller(fetcher, store)

	runFor(t, p, 50*time.Millisecond)

	assert.Empty(t, store.events)
	assert.NoError(t, p.CheckReadiness(context.Background()), "a cycle with only suppressed reports still completes")
}

func TestPoller_Run_MalformedLineDoesNotStopTheCycle(t *testing.T) {
	fetcher := &mockFetcher{bodies: []string{garbage + "\n" + windAge3}}
	store := &mockStore{}
	p := newPoller(fetcher, store)

	runFor(t, p, 50*time.Millisecond)

	require.Len(t, store.events, 1)
	assert.Equal(t, "Report: Wind", store.events[0].Title)
}

func TestPoller_Run_SurvivesFetchFailures(t *testing.T) {
	fetcher := &mockFetcher{} // every fetch fails
	store := &mockStore{}
	p := newPoller(fetcher, store)

	runFor(t, p, 50*time.Millisecond)

	assert.Greater(t, fetcher.calls.Load(), int64(1), "loop must keep polling after failures")
	assert.Empty(t, store.events)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPoller_Run_SurvivesStoreFailures(t *testing.T) {
	fetcher := &mockFetcher{bodies: []string{windAge3}}
	store := &mockStore{err: errors.New("broker unavailable")}
	p := newPoller(fetcher, store)

	runFor(t, p, 50*time.Millisecond)

	assert.Empty(t, store.events)
	assert.NoError(t, p.CheckReadiness(context.Background()), "store failures do not block readiness")
}

func TestPoller_Run_ContextCancellation(t *testing.T) {
	fetcher := &mockFetcher{bodies: []string{windAge3}}
	store := &mockStore{}
	p := newPoller(fetcher, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
}

func TestPoller_CheckReadiness_BeforeFirstCycle(t *testing.T) {
	p := newPoller(&mockFetcher{bodies: []string{""}}, &mockStore{})
	assert.Error(t, p.CheckReadiness(context.Background()))
}
