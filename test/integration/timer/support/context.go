// Package support holds step definitions for the timer feature suite.
package support

import (
	"fmt"
	"time"

	"github.com/MeKo-Tech/tally/internal/clock"
	"github.com/MeKo-Tech/tally/internal/timer"
)

// TestContext holds the state of one scenario.
type TestContext struct {
	Clock    *clock.Manual
	Registry *timer.Registry
	Timers   map[string]*timer.Timer
	Logged   []string

	LastError   error
	LastReport  string
	LastElapsed time.Duration
}

// NewTestContext creates a context with a manual clock and an empty registry.
func NewTestContext() *TestContext {
	return &TestContext{
		Clock:    clock.NewManual(time.Unix(0, 0)),
		Registry: timer.NewRegistry(),
		Timers:   make(map[string]*timer.Timer),
	}
}

// newTimer registers a timer under label. An empty name makes it unnamed.
func (testCtx *TestContext) newTimer(label, name string, opts ...timer.Option) error {
	base := []timer.Option{
		timer.WithClock(testCtx.Clock),
		timer.WithRegistry(testCtx.Registry),
		timer.WithLogger(func(msg string) { testCtx.Logged = append(testCtx.Logged, msg) }),
	}
	if name != "" {
		base = append(base, timer.WithName(name))
	}

	tm, err := timer.New(append(base, opts...)...)
	if err != nil {
		testCtx.LastError = err
		return nil
	}
	testCtx.Timers[label] = tm
	return nil
}

// timer returns the timer registered under label.
func (testCtx *TestContext) timer(label string) (*timer.Timer, error) {
	tm, ok := testCtx.Timers[label]
	if !ok {
		return nil, fmt.Errorf("no timer %q in this scenario", label)
	}
	return tm, nil
}
