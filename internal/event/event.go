// Package event normalises the messages driving the interface into input and
// tick events and schedules the periodic tick.
package event

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const DefaultTickInterval = 200 * time.Millisecond

type Kind int

const (
	Input Kind = iota
	Tick
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Tick:
		return "tick"
	default:
		return "unknown"
	}
}

// Event is one element of the ordered stream consumed by the controller.
type Event struct {
	Kind Kind
	Key  tea.KeyMsg
	At   time.Time
}

// TickMsg is delivered when the tick budget runs out.
type TickMsg struct {
	At time.Time
}

// FromMsg converts a key press or tick into an Event. Any other message is
// reported as not an event.
func FromMsg(msg tea.Msg) (Event, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return Event{Kind: Input, Key: msg, At: time.Now()}, true
	case TickMsg:
		return Event{Kind: Tick, At: msg.At}, true
	}
	return Event{}, false
}

// Ticker schedules TickMsg deliveries so that consecutive ticks are spaced by
// the configured interval regardless of how much input arrived in between.
type Ticker struct {
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	last    time.Time
	stopped bool
}

func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Ticker{interval: interval, now: time.Now, last: time.Now()}
}

func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Budget is the time left until the next tick is due, never negative.
func (t *Ticker) Budget() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.budget()
}

func (t *Ticker) budget() time.Duration {
	remaining := t.interval - t.now().Sub(t.last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Next returns a command that delivers a TickMsg once the budget is spent.
// It returns nil after Stop.
func (t *Ticker) Next() tea.Cmd {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return nil
	}

	return tea.Tick(t.budget(), func(at time.Time) tea.Msg {
		t.mark(at)
		return TickMsg{At: at}
	})
}

func (t *Ticker) mark(at time.Time) {
	t.mu.Lock()
	t.last = at
	t.mu.Unlock()
}

// Stop prevents any further ticks from being scheduled.
func (t *Ticker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}
