package timer

import (
	"context"
	"errors"
	"time"
)

// Guard holds a running timer until Close is called. Use it with defer:
//
//	g, err := t.Begin()
//	if err != nil {
//		return err
//	}
//	defer g.Close()
type Guard struct {
	t *Timer
}

// Begin starts the timer and returns a guard that stops it.
func (t *Timer) Begin() (*Guard, error) {
	if err := t.Start(); err != nil {
		return nil, err
	}
	return &Guard{t: t}, nil
}

// Close stops the timer, discarding the elapsed time.
func (g *Guard) Close() error {
	_, err := g.t.Stop()
	return err
}

// End stops the timer and returns the elapsed time.
func (g *Guard) End() (time.Duration, error) {
	return g.t.Stop()
}

// Time runs fn between Start and Stop. Stop runs on every exit path,
// including a panic in fn, which is re-raised after the timer stops.
// Errors from fn and from Stop are both returned. If Start fails, fn is
// not called.
func (t *Timer) Time(fn func() error) (err error) {
	if err := t.Start(); err != nil {
		return err
	}
	defer func() {
		if _, stopErr := t.Stop(); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()
	return fn()
}

// TimeContext is Time for functions that take a context. The context is
// passed through untouched; cancelling it does not stop the timer early.
func (t *Timer) TimeContext(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.Time(func() error { return fn(ctx) })
}
