package reconnect

import (
	"log/slog"
	"sync"
	"time"
)

// Defaults applied by NewManager when the corresponding Config field is zero.
const (
	DefaultInitialDelay    = 1000 * time.Millisecond
	DefaultMaxDelay        = 30000 * time.Millisecond
	DefaultPollingInterval = 10000 * time.Millisecond
)

// MaxRetriesMessage is the user-visible error recorded when the retry budget
// is exhausted.
const MaxRetriesMessage = "Connection lost. Please refresh."

// Config controls one Manager's retry and polling schedule.
type Config struct {
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	MaxRetries      int
	PollingInterval time.Duration
}

// Callbacks are optional notifications fired by the Manager. They are always
// invoked outside the Manager's lock; any of them may be nil.
type Callbacks struct {
	OnReconnectAttempt   func(attempt int)
	OnReconnectSuccess   func()
	OnMaxRetriesExceeded func()
}

// State is a point-in-time snapshot of a Manager. NextRetryIn is derived
// from the pending retry's deadline, so repeated snapshots count down to
// zero as the delay elapses.
type State struct {
	AttemptCount       int
	IsReconnecting     bool
	LastEventID        string
	Error              string
	MaxRetriesExceeded bool
	IsPolling          bool
	NextRetryIn        time.Duration
}

// Manager is a protocol-agnostic resilience wrapper around an opaque
// reconnect callback and, for degraded mode, an opaque poll callback. It
// schedules reconnect attempts with exponential backoff, enforces a bounded
// retry budget, carries a resumption marker across attempts, and can fall
// back to periodic polling once the budget is spent.
//
// One Manager serves one logical connection session and holds at most one
// pending timer at a time: any operation that supersedes a pending reconnect
// cancels it first, so a stale timer can never fire after the state has
// moved on. Construct with NewManager and dispose with Stop; a Manager is
// never shared process-wide.
type Manager struct {
	cfg   Config
	cbs   Callbacks
	clock Clock

	mu           sync.Mutex
	attemptCount int
	reconnecting bool
	lastEventID  string
	errMsg       string
	exceeded     bool
	polling      bool
	retryAt      time.Time
	timer        Timer
	timerSeq     int
	pollTimer    Timer
	pollSeq      int
}

// NewManager returns a Manager driven by the wall clock.
func NewManager(cfg Config, cbs Callbacks) *Manager {
	return NewManagerWithClock(cfg, cbs, realClock{})
}

// NewManagerWithClock is NewManager with an injected clock, for tests that
// need deterministic virtual time.
func NewManagerWithClock(cfg Config, cbs Callbacks, clock Clock) *Manager {
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultInitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}
	if cfg.PollingInterval <= 0 {
		cfg.PollingInterval = DefaultPollingInterval
	}
	return &Manager{cfg: cfg, cbs: cbs, clock: clock}
}

// ScheduleReconnect counts a new attempt and arms a single timer that will
// invoke reconnectFn exactly once after the backoff delay for this attempt.
// A previously pending timer is cancelled first. Once the attempt count
// passes MaxRetries the Manager enters the terminal exceeded state instead
// and schedules nothing further; only OnConnectionSuccess, ResetState, or
// ManualRetry leave that state.
func (m *Manager) ScheduleReconnect(reconnectFn func()) {
	m.mu.Lock()
	m.cancelTimerLocked()
	// Reconnecting and polling are mutually exclusive modes.
	m.stopPollingLocked()
	m.attemptCount++
	attempt := m.attemptCount

	if attempt > m.cfg.MaxRetries {
		m.exceeded = true
		m.reconnecting = false
		m.errMsg = MaxRetriesMessage
		m.retryAt = time.Time{}
		cb := m.cbs.OnMaxRetriesExceeded
		m.mu.Unlock()
		slog.Warn("Reconnect budget exhausted", "attempts", attempt-1)
		if cb != nil {
			cb()
		}
		return
	}

	delay := Backoff(attempt-1, m.cfg.InitialDelay, m.cfg.MaxDelay)
	m.reconnecting = true
	m.retryAt = m.clock.Now().Add(delay)
	m.timerSeq++
	seq := m.timerSeq
	m.timer = m.clock.AfterFunc(delay, func() {
		m.fire(seq, reconnectFn)
	})
	cb := m.cbs.OnReconnectAttempt
	m.mu.Unlock()

	slog.Info("Scheduled reconnect attempt", "attempt", attempt, "delay", delay)
	if cb != nil {
		cb(attempt)
	}
}

// fire runs the armed reconnect callback unless the timer was superseded
// between arming and expiry.
func (m *Manager) fire(seq int, reconnectFn func()) {
	m.mu.Lock()
	if seq != m.timerSeq || m.exceeded {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.retryAt = time.Time{}
	m.mu.Unlock()
	reconnectFn()
}

// OnConnectionSuccess resets the retry budget after a connection was
// re-established. Any pending timer is cancelled and the exceeded state is
// cleared. The resumption marker is deliberately left alone.
func (m *Manager) OnConnectionSuccess() {
	m.mu.Lock()
	m.cancelTimerLocked()
	m.attemptCount = 0
	m.reconnecting = false
	m.errMsg = ""
	m.exceeded = false
	m.retryAt = time.Time{}
	cb := m.cbs.OnReconnectSuccess
	m.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// SetLastEventID records the identifier of the last successfully processed
// event. It survives reconnect attempts, failed attempts, and success; only
// ResetState clears it.
func (m *Manager) SetLastEventID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastEventID = id
}

// LastEventID returns the recorded resumption marker, or "".
func (m *Manager) LastEventID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastEventID
}

// ManualRetry clears the exceeded state and the attempt count, then performs
// one fresh ScheduleReconnect. After the call the attempt count is 1 and a
// reconnect is pending.
func (m *Manager) ManualRetry(reconnectFn func()) {
	m.mu.Lock()
	m.cancelTimerLocked()
	m.exceeded = false
	m.errMsg = ""
	m.attemptCount = 0
	m.mu.Unlock()
	m.ScheduleReconnect(reconnectFn)
}

// ResetState returns every field to its initial value, cancels any pending
// timer, and stops polling. This is the only operation that clears the
// resumption marker.
func (m *Manager) ResetState() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimerLocked()
	m.stopPollingLocked()
	m.attemptCount = 0
	m.reconnecting = false
	m.lastEventID = ""
	m.errMsg = ""
	m.exceeded = false
	m.retryAt = time.Time{}
}

// EnablePolling switches to the degraded mode of last resort: pollFn is
// invoked immediately, then again every PollingInterval until
// DisablePolling. A failing poll is logged and swallowed; it never changes
// the cadence and never produces a new error state.
func (m *Manager) EnablePolling(pollFn func() error) {
	m.mu.Lock()
	m.cancelTimerLocked()
	m.stopPollingLocked()
	m.polling = true
	m.reconnecting = false
	m.retryAt = time.Time{}
	m.pollSeq++
	seq := m.pollSeq
	m.mu.Unlock()

	m.pollOnce(seq, pollFn)
}

// DisablePolling stops the polling loop.
func (m *Manager) DisablePolling() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopPollingLocked()
}

// pollOnce runs one poll and, if polling is still this generation's job,
// schedules the next one.
func (m *Manager) pollOnce(seq int, pollFn func() error) {
	m.mu.Lock()
	if !m.polling || seq != m.pollSeq {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	if err := pollFn(); err != nil {
		slog.Warn("Poll failed, keeping polling cadence", "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.polling || seq != m.pollSeq {
		return
	}
	m.pollTimer = m.clock.AfterFunc(m.cfg.PollingInterval, func() {
		m.pollOnce(seq, pollFn)
	})
}

// GetBackoffDelay exposes the backoff policy for inspection. No side effects.
func (m *Manager) GetBackoffDelay(attempt int) time.Duration {
	return Backoff(attempt, m.cfg.InitialDelay, m.cfg.MaxDelay)
}

// State returns a snapshot of the manager.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := State{
		AttemptCount:       m.attemptCount,
		IsReconnecting:     m.reconnecting,
		LastEventID:        m.lastEventID,
		Error:              m.errMsg,
		MaxRetriesExceeded: m.exceeded,
		IsPolling:          m.polling,
	}
	if m.reconnecting && !m.retryAt.IsZero() {
		if remaining := m.retryAt.Sub(m.clock.Now()); remaining > 0 {
			s.NextRetryIn = remaining
		}
	}
	return s
}

// Stop disposes of the manager: pending timers are cancelled and polling
// stops. The manager must not be reused afterwards.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimerLocked()
	m.stopPollingLocked()
}

func (m *Manager) cancelTimerLocked() {
	m.timerSeq++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.retryAt = time.Time{}
}

func (m *Manager) stopPollingLocked() {
	m.polling = false
	m.pollSeq++
	if m.pollTimer != nil {
		m.pollTimer.Stop()
		m.pollTimer = nil
	}
}
