// Package reveal renders text one character at a time.
package reveal

import (
	"sync"
	"time"

	"github.com/comigor/lifeloop/internal/clock"
)

// Typewriter emits growing prefixes of a text, one rune per tick. For a text
// of N runes it emits N+1 prefixes: the empty prefix immediately on SetText,
// then one per tick until the full text.
type Typewriter struct {
	clk  clock.Clock
	rate time.Duration
	emit func(string)

	// emitMu serialises emissions against Stop and SetText.
	emitMu  sync.Mutex
	mu      sync.Mutex
	text    string
	runes   []rune
	pos     int
	started bool
	stopped bool
	gen     uint64
	timer   clock.Timer
}

// New creates a Typewriter ticking every rate. emit receives each prefix in
// order; it must not call back into the Typewriter.
func New(clk clock.Clock, rate time.Duration, emit func(string)) *Typewriter {
	if clk == nil {
		clk = clock.Real{}
	}
	if emit == nil {
		emit = func(string) {}
	}
	return &Typewriter{clk: clk, rate: rate, emit: emit}
}

// SetText starts revealing text. Passing the text already being revealed is a
// no-op; any other text cancels the current sequence and restarts from empty.
func (t *Typewriter) SetText(text string) {
	t.emitMu.Lock()
	defer t.emitMu.Unlock()

	t.mu.Lock()
	if t.stopped || (t.started && text == t.text) {
		t.mu.Unlock()
		return
	}
	t.cancelLocked()
	t.text = text
	t.runes = []rune(text)
	t.pos = 0
	t.started = true
	gen := t.gen
	t.scheduleLocked(gen)
	t.mu.Unlock()

	t.emit("")
}

// Stop cancels any pending tick. No prefix is emitted after Stop returns.
func (t *Typewriter) Stop() {
	t.emitMu.Lock()
	defer t.emitMu.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.cancelLocked()
}

// Done reports whether the full text has been emitted.
func (t *Typewriter) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started && t.pos == len(t.runes)
}

// Text returns the text being revealed.
func (t *Typewriter) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// Visible returns the prefix emitted last.
func (t *Typewriter) Visible() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.runes[:t.pos])
}

func (t *Typewriter) cancelLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Typewriter) scheduleLocked(gen uint64) {
	if t.pos >= len(t.runes) {
		t.timer = nil
		return
	}
	t.timer = t.clk.AfterFunc(t.rate, func() { t.tick(gen) })
}

func (t *Typewriter) tick(gen uint64) {
	t.emitMu.Lock()
	defer t.emitMu.Unlock()

	t.mu.Lock()
	// a stale tick can still run if it was already firing when cancelled
	if t.stopped || gen != t.gen || t.pos >= len(t.runes) {
		t.mu.Unlock()
		return
	}
	t.pos++
	if t.rate <= 0 {
		t.pos = len(t.runes)
	}
	prefix := string(t.runes[:t.pos])
	t.scheduleLocked(gen)
	t.mu.Unlock()

	t.emit(prefix)
}
