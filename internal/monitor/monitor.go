package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dimaskresna/lelang-bot/internal/detect"
	"github.com/dimaskresna/lelang-bot/internal/model"
)

// State of one monitoring instance.
type State int32

const (
	StateIdle State = iota
	StatePolling
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopReason explains why a monitor stopped.
type StopReason string

const (
	ReasonManual         StopReason = "stopped by user"
	ReasonSessionExpired StopReason = "session expired"
	ReasonAuctionEnded   StopReason = "auction ended"
	ReasonFetchFailures  StopReason = "too many consecutive fetch failures"
)

// Fetcher produces the current snapshot for the monitored auction.
type Fetcher interface {
	Fetch(ctx context.Context) (model.Snapshot, error)
}

// FetcherFunc is a function adapter for Fetcher.
type FetcherFunc func(ctx context.Context) (model.Snapshot, error)

func (f FetcherFunc) Fetch(ctx context.Context) (model.Snapshot, error) { return f(ctx) }

// EventHandler receives each tick's snapshot and detected events. Called
// synchronously from the polling loop, so the next tick is not armed until
// dispatch completes.
type EventHandler interface {
	HandleTick(snap model.Snapshot, events []model.Event)
}

// EventHandlerFunc is a function adapter for EventHandler.
type EventHandlerFunc func(snap model.Snapshot, events []model.Event)

func (f EventHandlerFunc) HandleTick(snap model.Snapshot, events []model.Event) { f(snap, events) }

// Config holds monitor settings.
type Config struct {
	DefaultInterval time.Duration // Interval when the countdown is unknown (default: 3s)
	FetchTimeout    time.Duration // Per-fetch timeout (default: 10s)
	MaxFetchErrors  int           // Consecutive failures before giving up (default: 5)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultInterval: 3 * time.Second,
		FetchTimeout:    10 * time.Second,
		MaxFetchErrors:  5,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.DefaultInterval <= 0 {
		c.DefaultInterval = d.DefaultInterval
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = d.FetchTimeout
	}
	if c.MaxFetchErrors <= 0 {
		c.MaxFetchErrors = d.MaxFetchErrors
	}
}

// ErrNotIdle is returned when Start is called on a monitor that already ran.
var ErrNotIdle = errors.New("monitor already started")

// Monitor drives the polling loop for one auction.
type Monitor struct {
	cfg     Config
	fetcher Fetcher
	handler EventHandler
	onStop  func(StopReason)
	logger  *slog.Logger

	mu       sync.Mutex
	state    State
	prev     *model.Snapshot
	interval time.Duration
	errs     int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Monitor in the Idle state. onStop may be nil; when set it is
// called exactly once with the reason the loop ended, including manual stops.
func New(cfg Config, fetcher Fetcher, handler EventHandler, onStop func(StopReason), logger *slog.Logger) *Monitor {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		cfg:      cfg,
		fetcher:  fetcher,
		handler:  handler,
		onStop:   onStop,
		logger:   logger,
		state:    StateIdle,
		interval: cfg.DefaultInterval,
	}
}

// Start transitions Idle -> Polling and arms the first tick within the
// default interval. A monitor can only be started once.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return ErrNotIdle
	}
	m.state = StatePolling
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run()

	m.logger.Info("monitor started", "interval", m.cfg.DefaultInterval)
	return nil
}

// Stop cancels the pending timer and transitions to Stopped. An in-flight
// fetch is not interrupted; it completes in the background and its result
// is discarded. Safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	polling := m.state == StatePolling
	m.mu.Unlock()
	if !polling {
		return
	}

	m.cancel()
	m.setStopped(ReasonManual)
}

// Shutdown stops the loop without firing the stop callback. Used during
// process shutdown, where per-chat "monitoring stopped" notifications would
// be noise.
func (m *Monitor) Shutdown() {
	m.mu.Lock()
	if m.state == StatePolling {
		m.state = StateStopped
	}
	cancel := m.cancel
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the polling goroutine has fully exited.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// State returns the current state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// run is the polling loop. One timer, re-armed after each completed tick.
func (m *Monitor) run() {
	defer m.wg.Done()

	timer := time.NewTimer(m.currentInterval())
	defer timer.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-timer.C:
			if reason, stopped := m.tick(); stopped {
				m.setStopped(reason)
				return
			}
			timer.Reset(m.currentInterval())
		}
	}
}

// tick runs one fetch -> detect -> dispatch -> reschedule sequence.
func (m *Monitor) tick() (StopReason, bool) {
	// The fetch survives a concurrent Stop: only the timeout bounds it.
	// A fetch that outlives the monitor has its result discarded below.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(m.ctx), m.cfg.FetchTimeout)
	snap, err := m.fetcher.Fetch(ctx)
	cancel()

	if m.ctx.Err() != nil {
		return "", false
	}

	if err != nil {
		m.errs++
		m.logger.Warn("fetch failed, skipping tick",
			"consecutive_errors", m.errs,
			"err", err,
		)
		if m.errs >= m.cfg.MaxFetchErrors {
			return ReasonFetchFailures, true
		}
		return "", false
	}
	m.errs = 0

	events := detect.Detect(m.prev, snap)
	m.prev = &snap

	if m.handler != nil {
		m.handler.HandleTick(snap, events)
	}

	m.reschedule(snap)

	for _, ev := range events {
		if _, ok := ev.(model.SessionExpired); ok {
			return ReasonSessionExpired, true
		}
	}
	if snap.Ended() {
		return ReasonAuctionEnded, true
	}
	return "", false
}

// reschedule derives the next interval from this tick's countdown.
func (m *Monitor) reschedule(snap model.Snapshot) {
	remaining, known := snap.Remaining()
	next := IntervalFor(remaining, known, m.cfg.DefaultInterval)

	m.mu.Lock()
	if next != m.interval {
		m.logger.Debug("polling interval changed",
			"from", m.interval,
			"to", next,
			"remaining", remaining,
		)
	}
	m.interval = next
	m.mu.Unlock()
}

func (m *Monitor) currentInterval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

// setStopped moves to Stopped and fires the callback once.
func (m *Monitor) setStopped(reason StopReason) {
	m.mu.Lock()
	if m.state == StateStopped {
		m.mu.Unlock()
		return
	}
	m.state = StateStopped
	onStop := m.onStop
	m.mu.Unlock()

	m.logger.Info("monitor stopped", "reason", string(reason))
	if onStop != nil {
		onStop(reason)
	}
}
