package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrAlreadyActive is returned when a chat tries to start a second monitor.
var ErrAlreadyActive = errors.New("monitoring is already active")

// Manager keys live monitors by chat. Each chat runs at most one monitor;
// restarting after a stop creates a fresh instance with a clean baseline.
type Manager struct {
	cfg    Config
	logger *slog.Logger

	mu       sync.Mutex
	monitors map[int64]*Monitor
}

// NewManager creates an empty Manager.
func NewManager(cfg Config, logger *slog.Logger) *Manager {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:      cfg,
		logger:   logger,
		monitors: make(map[int64]*Monitor),
	}
}

// Start creates and starts a monitor for the chat. onStop is invoked once
// when the monitor ends for any reason except process shutdown; the manager
// removes its bookkeeping before forwarding the callback.
func (g *Manager) Start(ctx context.Context, chatID int64, fetcher Fetcher, handler EventHandler, onStop func(StopReason)) error {
	g.mu.Lock()
	if existing, ok := g.monitors[chatID]; ok && existing.State() == StatePolling {
		g.mu.Unlock()
		return ErrAlreadyActive
	}

	logger := g.logger.With("chat_id", chatID)
	m := New(g.cfg, fetcher, handler, func(reason StopReason) {
		g.remove(chatID)
		if onStop != nil {
			onStop(reason)
		}
	}, logger)
	g.monitors[chatID] = m
	g.mu.Unlock()

	if err := m.Start(ctx); err != nil {
		g.remove(chatID)
		return err
	}
	return nil
}

// Stop stops the chat's monitor if one is polling. Reports whether there was
// anything to stop.
func (g *Manager) Stop(chatID int64) bool {
	g.mu.Lock()
	m, ok := g.monitors[chatID]
	g.mu.Unlock()
	if !ok {
		return false
	}

	m.Stop()
	return true
}

// Active reports whether the chat currently has a polling monitor.
func (g *Manager) Active(chatID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.monitors[chatID]
	return ok && m.State() == StatePolling
}

// Count returns the number of tracked monitors.
func (g *Manager) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.monitors)
}

// Shutdown silently stops all monitors. Used on process exit.
func (g *Manager) Shutdown() {
	g.mu.Lock()
	monitors := make([]*Monitor, 0, len(g.monitors))
	for _, m := range g.monitors {
		monitors = append(monitors, m)
	}
	g.monitors = make(map[int64]*Monitor)
	g.mu.Unlock()

	for _, m := range monitors {
		m.Shutdown()
	}
}

func (g *Manager) remove(chatID int64) {
	g.mu.Lock()
	delete(g.monitors, chatID)
	g.mu.Unlock()
}
