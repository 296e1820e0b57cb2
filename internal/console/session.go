// Package console implements the simulated LIFELOOP terminal session: an
// append-only transcript, a thinking delay per question and a one-shot
// completion signal once enough questions have been answered.
package console

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qmuntal/stateless"

	"github.com/comigor/lifeloop/internal/clock"
	"github.com/comigor/lifeloop/internal/logger"
	"github.com/comigor/lifeloop/internal/resolver"
)

// FSM States
type FSMState stateless.State

var (
	stateIdle       FSMState = "Idle"
	stateProcessing FSMState = "Processing"
	stateClosed     FSMState = "Closed" // Terminal: session torn down
)

// FSM Triggers
type FSMTrigger stateless.Trigger

var (
	triggerSubmit  FSMTrigger = "Submit"
	triggerRespond FSMTrigger = "Respond"
	triggerClose   FSMTrigger = "Close"
)

// Config holds the session timing.
type Config struct {
	ThinkMin        time.Duration
	ThinkMax        time.Duration
	CompletionDelay time.Duration
	// CompletionTurns is the number of answered questions that completes the session.
	CompletionTurns int
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		ThinkMin:        1500 * time.Millisecond,
		ThinkMax:        2500 * time.Millisecond,
		CompletionDelay: 2000 * time.Millisecond,
		CompletionTurns: 3,
	}
}

// Option customises a Session.
type Option func(*Session)

// WithClock sets the clock used for timestamps and delays.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clk = c }
}

// WithOnComplete sets the callback fired once the session completes. It runs
// outside the session lock and may call back into the session, Close included.
func WithOnComplete(f func()) Option {
	return func(s *Session) { s.onComplete = f }
}

// WithOnChange sets a callback invoked with a fresh snapshot after every change.
// It runs outside the session lock, must not block, and may call back into
// the session.
func WithOnChange(f func(Snapshot)) Option {
	return func(s *Session) { s.onChange = f }
}

// WithJitter replaces the thinking-delay draw.
func WithJitter(f func(lo, hi time.Duration) time.Duration) Option {
	return func(s *Session) { s.jitter = f }
}

// Session is one console conversation. All methods are safe for concurrent use.
type Session struct {
	cfg        Config
	res        *resolver.Resolver
	clk        clock.Clock
	jitter     func(lo, hi time.Duration) time.Duration
	onComplete func()
	onChange   func(Snapshot)

	// notifyMu orders callbacks against Close. Calls made from inside a
	// callback skip it; dispatching counts callbacks in flight.
	notifyMu    sync.Mutex
	dispatching int
	mu       sync.Mutex
	fsm      *stateless.StateMachine

	log     []Message
	seq     uint64
	pending string
	turns   int

	completionScheduled bool
	completionNotified  bool

	thinkTimer    clock.Timer
	completeTimer clock.Timer
	gen           uint64
}

// New opens a session answering with res. The transcript starts with the banner lines.
func New(res *resolver.Resolver, cfg Config, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		res:    res,
		clk:    clock.Real{},
		jitter: uniform,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.CompletionTurns <= 0 {
		s.cfg.CompletionTurns = DefaultConfig().CompletionTurns
	}

	s.fsm = stateless.NewStateMachine(stateIdle)
	s.fsm.Configure(stateIdle).
		OnEntry(func(_ context.Context, _ ...any) error {
			logger.L.Debug("console: idle", "turns", s.turns)
			return nil
		}).
		Permit(triggerSubmit, stateProcessing).
		Permit(triggerClose, stateClosed)
	s.fsm.Configure(stateProcessing).
		OnEntry(func(_ context.Context, _ ...any) error {
			logger.L.Debug("console: processing")
			return nil
		}).
		Permit(triggerRespond, stateIdle).
		Permit(triggerClose, stateClosed)
	s.fsm.Configure(stateClosed).
		Ignore(triggerClose)

	s.appendLocked(KindSystem, BannerLine)
	s.appendLocked(KindSystem, PromptLine)
	return s
}

// Submit sends text as a question. Blank text, or a submit while a previous
// question is still being answered, is silently ignored.
func (s *Session) Submit(text string) {
	defer s.enter()()

	s.mu.Lock()
	if strings.TrimSpace(text) == "" || s.fsm.MustState() != stateIdle {
		s.mu.Unlock()
		return
	}
	if err := s.fsm.Fire(triggerSubmit); err != nil {
		logger.L.Warn("console: submit rejected", "error", err)
		s.mu.Unlock()
		return
	}
	s.appendLocked(KindInput, text)
	s.pending = ""

	delay := s.jitter(s.cfg.ThinkMin, s.cfg.ThinkMax)
	gen := s.gen
	s.thinkTimer = s.clk.AfterFunc(delay, func() { s.respond(gen, text) })
	logger.L.Info("console: question submitted", "query", text, "delay", delay)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
}

func (s *Session) respond(gen uint64, text string) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if gen != s.gen || s.fsm.MustState() != stateProcessing {
		s.mu.Unlock()
		return
	}
	answer, canned := s.res.Lookup(text)
	s.appendLocked(KindOutput, answer)
	s.thinkTimer = nil
	if err := s.fsm.Fire(triggerRespond); err != nil {
		logger.L.Error("console: respond transition failed", "error", err)
	}
	s.turns++
	logger.L.Info("console: answered", "turn", s.turns, "canned", canned)

	if s.turns >= s.cfg.CompletionTurns && !s.completionScheduled {
		s.completionScheduled = true
		s.completeTimer = s.clk.AfterFunc(s.cfg.CompletionDelay, func() { s.complete(gen) })
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
}

func (s *Session) complete(gen uint64) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if gen != s.gen || s.completionNotified {
		s.mu.Unlock()
		return
	}
	s.completionNotified = true
	s.completeTimer = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	logger.L.Info("console: session complete", "turns", snap.TurnCount)
	if s.onComplete != nil {
		s.dispatch(s.onComplete)
	}
	s.changed(snap)
}

// SetPendingInput stores the uncommitted input buffer.
func (s *Session) SetPendingInput(text string) {
	defer s.enter()()

	s.mu.Lock()
	s.pending = text
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
}

// FillQuickCommand puts a catalog query into the input buffer without
// submitting it. It reports false and does nothing for unknown queries.
func (s *Session) FillQuickCommand(query string) bool {
	if _, ok := s.res.Catalog().Get(query); !ok {
		return false
	}
	s.SetPendingInput(query)
	return true
}

// QuickCommands lists the catalog queries in order.
func (s *Session) QuickCommands() []string {
	return s.res.Catalog().Queries()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close tears the session down. Pending answers and the completion signal are
// dropped, and no callback starts after Close returns. Called from inside a
// callback, Close does not wait for that callback to finish.
func (s *Session) Close() {
	defer s.enter()()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fsm.MustState() == stateClosed {
		return
	}
	s.gen++
	for _, t := range []clock.Timer{s.thinkTimer, s.completeTimer} {
		if t != nil {
			t.Stop()
		}
	}
	s.thinkTimer, s.completeTimer = nil, nil
	if err := s.fsm.Fire(triggerClose); err != nil {
		logger.L.Warn("console: close transition failed", "error", err)
	}
}

func (s *Session) appendLocked(kind Kind, content string) {
	s.seq++
	s.log = append(s.log, Message{
		ID:        uuid.NewString(),
		Seq:       s.seq,
		Kind:      kind,
		Content:   content,
		CreatedAt: s.clk.Now(),
	})
}

func (s *Session) snapshotLocked() Snapshot {
	log := make([]Message, len(s.log))
	copy(log, s.log)
	return Snapshot{
		Log:          log,
		PendingInput: s.pending,
		IsProcessing: s.fsm.MustState() == stateProcessing,
		TurnCount:    s.turns,
		Completed:    s.completionNotified,
	}
}

func (s *Session) changed(snap Snapshot) {
	if s.onChange == nil {
		return
	}
	s.mu.Lock()
	closed := s.fsm.MustState() == stateClosed
	s.mu.Unlock()
	if closed {
		return
	}
	s.dispatch(func() { s.onChange(snap) })
}

// enter takes notifyMu unless a callback is running, and returns the release.
func (s *Session) enter() func() {
	s.mu.Lock()
	nested := s.dispatching > 0
	s.mu.Unlock()
	if nested {
		return func() {}
	}
	s.notifyMu.Lock()
	return s.notifyMu.Unlock
}

func (s *Session) dispatch(f func()) {
	s.mu.Lock()
	s.dispatching++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.dispatching--
		s.mu.Unlock()
	}()
	f()
}

func uniform(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo+1)
}
