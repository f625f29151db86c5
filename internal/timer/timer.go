// Package timer measures elapsed time of code regions.
//
// A Timer is a two-state stopwatch (idle or running). Named timers add
// every stopped measurement into a Registry shared by all timers bound
// to it, so repeated runs of the same region can be reported in
// aggregate. A Timer is meant to be driven from one goroutine at a time;
// the Registry may be shared freely.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MeKo-Tech/tally/internal/clock"
	"github.com/MeKo-Tech/tally/internal/template"
)

// Logger receives the rendered message of each stopped measurement.
type Logger func(msg string)

// Timer measures one region at a time.
type Timer struct {
	name     string
	text     string
	template template.Template
	logger   Logger
	clock    clock.Clock
	registry *Registry
	eager    bool

	start   time.Time
	running bool
	last    time.Duration
}

// Option configures a Timer.
type Option func(*Timer)

// WithName makes the timer accumulate into the registry under name.
func WithName(name string) Option {
	return func(t *Timer) { t.name = name }
}

// WithTemplate sets the message template. It must hold exactly one
// float verb, e.g. "%0.6f seconds.".
func WithTemplate(text string) Option {
	return func(t *Timer) { t.text = text }
}

// WithLogger sets the callback invoked on every Stop.
func WithLogger(l Logger) Option {
	return func(t *Timer) { t.logger = l }
}

// WithSlog logs every Stop through l at the given level. The timer name
// and the elapsed seconds are attached as attributes.
func WithSlog(l *slog.Logger, level slog.Level) Option {
	return func(t *Timer) {
		t.logger = func(msg string) {
			attrs := []any{"elapsed_seconds", t.last.Seconds()}
			if t.name != "" {
				attrs = append(attrs, "timer", t.name)
			}
			l.Log(context.Background(), level, msg, attrs...)
		}
	}
}

// WithClock replaces the system clock.
func WithClock(c clock.Clock) Option {
	return func(t *Timer) { t.clock = c }
}

// WithRegistry binds the timer to r instead of Default().
func WithRegistry(r *Registry) Option {
	return func(t *Timer) { t.registry = r }
}

// WithEagerRegistration registers the timer name at zero on construction,
// so it is reported before its first Stop.
func WithEagerRegistration() Option {
	return func(t *Timer) { t.eager = true }
}

// New creates an idle timer. It fails if the template is invalid.
func New(opts ...Option) (*Timer, error) {
	t := &Timer{
		text:     template.Default,
		clock:    clock.System{},
		registry: Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	tmpl, err := template.Parse(t.text)
	if err != nil {
		return nil, fmt.Errorf("timer %q: %w", t.name, err)
	}
	t.template = tmpl

	if t.eager && t.name != "" {
		t.registry.Register(t.name)
	}
	return t, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Timer {
	t, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Start begins a measurement.
func (t *Timer) Start() error {
	if t.running {
		return fmt.Errorf("start %s: %w", t.label(), ErrAlreadyRunning)
	}
	t.start = t.clock.Now()
	t.running = true
	return nil
}

// Stop ends the measurement and returns the elapsed time. The message is
// logged if a logger is set, and the elapsed time is added to the
// registry if the timer is named.
func (t *Timer) Stop() (time.Duration, error) {
	if !t.running {
		return 0, fmt.Errorf("stop %s: %w", t.label(), ErrNotRunning)
	}

	elapsed := t.clock.Now().Sub(t.start)
	if elapsed < 0 {
		elapsed = 0
	}
	t.running = false
	t.start = time.Time{}
	t.last = elapsed

	if t.logger != nil {
		t.logger(t.template.Render(elapsed))
	}
	if t.name != "" {
		t.registry.Add(t.name, elapsed)
	}
	return elapsed, nil
}

// Name returns the timer name, empty if unnamed.
func (t *Timer) Name() string {
	return t.name
}

// Running reports whether a measurement is in progress.
func (t *Timer) Running() bool {
	return t.running
}

// Last returns the most recent elapsed time (zero before the first Stop).
func (t *Timer) Last() time.Duration {
	return t.last
}

// Registry returns the registry the timer accumulates into.
func (t *Timer) Registry() *Registry {
	return t.registry
}

// String returns a formatted string representation of the timer.
func (t *Timer) String() string {
	if t.name != "" {
		return fmt.Sprintf("%s: %v", t.name, t.last)
	}
	return fmt.Sprintf("%v", t.last)
}

func (t *Timer) label() string {
	if t.name == "" {
		return "timer"
	}
	return fmt.Sprintf("timer %q", t.name)
}
