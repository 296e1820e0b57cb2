package tui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/comigor/lifeloop/internal/clock"
	"github.com/comigor/lifeloop/internal/console"
	"github.com/comigor/lifeloop/internal/reveal"
)

// refreshMsg asks the model to re-read the session and the reveal state.
type refreshMsg struct{}

// bridge carries timer-driven events into the Bubble Tea loop. Callbacks only
// poke a one-slot channel, so they never block whatever goroutine fired them.
type bridge struct {
	signal    chan struct{}
	completed atomic.Bool
}

func newBridge() *bridge {
	return &bridge{signal: make(chan struct{}, 1)}
}

func (b *bridge) poke() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}

func (b *bridge) onComplete() {
	b.completed.Store(true)
	b.poke()
}

func (b *bridge) onChange(console.Snapshot) { b.poke() }

func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return refreshMsg{}
	}
}

type revealEntry struct {
	tw      *reveal.Typewriter
	visible string
}

// reveals keeps one typewriter per animated transcript line.
type reveals struct {
	clk        clock.Clock
	systemRate time.Duration
	outputRate time.Duration
	poke       func()

	mu      sync.Mutex
	entries map[string]*revealEntry
	stopped bool
}

func newReveals(clk clock.Clock, systemRate, outputRate time.Duration, poke func()) *reveals {
	return &reveals{
		clk:        clk,
		systemRate: systemRate,
		outputRate: outputRate,
		poke:       poke,
		entries:    make(map[string]*revealEntry),
	}
}

// sync starts a typewriter for every animated line not seen before.
func (r *reveals) sync(log []console.Message) {
	type start struct {
		tw   *reveal.Typewriter
		text string
	}
	var starts []start

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	for _, msg := range log {
		if msg.Kind == console.KindInput {
			continue
		}
		if _, ok := r.entries[msg.ID]; ok {
			continue
		}
		rate := r.systemRate
		if msg.Kind == console.KindOutput {
			rate = r.outputRate
		}
		e := &revealEntry{}
		e.tw = reveal.New(r.clk, rate, r.setter(e))
		r.entries[msg.ID] = e
		starts = append(starts, start{tw: e.tw, text: msg.Content})
	}
	r.mu.Unlock()

	// SetText emits synchronously, and the emitter takes r.mu
	for _, s := range starts {
		s.tw.SetText(s.text)
	}
}

func (r *reveals) setter(e *revealEntry) func(string) {
	return func(prefix string) {
		r.mu.Lock()
		e.visible = prefix
		r.mu.Unlock()
		r.poke()
	}
}

// visible returns what is currently shown of msg.
func (r *reveals) visible(msg console.Message) string {
	if msg.Kind == console.KindInput {
		return msg.Content
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[msg.ID]; ok {
		return e.visible
	}
	return ""
}

// typing reports whether any line is still being revealed.
func (r *reveals) typing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if !e.tw.Done() {
			return true
		}
	}
	return false
}

func (r *reveals) stop() {
	r.mu.Lock()
	r.stopped = true
	entries := make([]*revealEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.Unlock()

	for _, e := range entries {
		e.tw.Stop()
	}
}
