// Package connectivity tracks whether the POS backend is actually
// reachable. Link state alone is not trusted: the monitor probes the
// health endpoint, and a debounce window keeps flaky reconnects from
// firing a drain cycle per flap.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

//go:generate moq -out prober_mock.go . Prober

// Prober checks API reachability. The api client satisfies this with
// its Health method.
type Prober interface {
	Health(ctx context.Context) error
}

const (
	// DefaultProbeInterval is how often reachability is re-checked.
	DefaultProbeInterval = 30 * time.Second

	// DefaultDebounce is how long a fresh online transition must hold
	// before the drain trigger fires.
	DefaultDebounce = 2 * time.Second
)

// Monitor tracks online state and notifies subscribers on transitions.
type Monitor struct {
	prober  Prober
	logger  *slog.Logger
	trigger func()

	mu            sync.Mutex
	online        bool
	subscribers   map[int]func(online bool)
	nextSub       int
	debounceTimer *time.Timer

	probeInterval time.Duration
	debounce      time.Duration
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithProbeInterval overrides the periodic probe interval.
func WithProbeInterval(interval time.Duration) Option {
	return func(m *Monitor) { m.probeInterval = interval }
}

// WithDebounce overrides the online-transition debounce window.
func WithDebounce(window time.Duration) Option {
	return func(m *Monitor) { m.debounce = window }
}

// NewMonitor creates a connectivity monitor. The monitor starts
// offline; the first successful probe flips it online.
func NewMonitor(prober Prober, logger *slog.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		prober:        prober,
		logger:        logger,
		subscribers:   make(map[int]func(bool)),
		probeInterval: DefaultProbeInterval,
		debounce:      DefaultDebounce,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Online reports the current connectivity state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers a transition callback and returns an unsubscribe
// function. Callbacks run synchronously on the transitioning goroutine.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// SetTrigger installs the debounced drain trigger invoked after a
// connectivity-restored transition settles.
func (m *Monitor) SetTrigger(fn func()) {
	m.mu.Lock()
	m.trigger = fn
	m.mu.Unlock()
}

// SetOnline records a transition. Going online arms the debounce timer;
// going offline inside the window disarms it, so a rapid
// online-offline-online flap fires the trigger at most once.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()

	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online

	var callbacks []func(bool)
	for _, fn := range m.subscribers {
		callbacks = append(callbacks, fn)
	}

	if online {
		m.logger.Info("connectivity restored")
		if m.debounceTimer != nil {
			m.debounceTimer.Stop()
		}
		m.debounceTimer = time.AfterFunc(m.debounce, m.fireTrigger)
	} else {
		m.logger.Warn("connectivity lost")
		if m.debounceTimer != nil {
			m.debounceTimer.Stop()
			m.debounceTimer = nil
		}
	}
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(online)
	}
}

// fireTrigger runs the drain trigger if the monitor is still online
// when the debounce window closes.
func (m *Monitor) fireTrigger() {
	m.mu.Lock()
	trigger := m.trigger
	online := m.online
	m.mu.Unlock()

	if online && trigger != nil {
		trigger()
	}
}

// Probe checks reachability once, with a short fibonacci backoff around
// transient probe errors, and records the outcome.
func (m *Monitor) Probe(ctx context.Context) bool {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(200*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := m.prober.Health(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})

	online := err == nil
	m.SetOnline(online)
	return online
}

// Start runs the periodic probe loop until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	m.Probe(ctx)

	ticker := time.NewTicker(m.probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}
