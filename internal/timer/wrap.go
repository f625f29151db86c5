package timer

// The wrappers below return functions with the same signature as the one
// they wrap. Every call is its own Start/Stop cycle on the shared timer,
// so a named timer accumulates across calls. Results and errors pass
// through unchanged.

// Wrap times every call of fn.
func Wrap(t *Timer, fn func() error) func() error {
	return func() error {
		return t.Time(fn)
	}
}

// WrapValue times every call of fn and returns its result.
func WrapValue[R any](t *Timer, fn func() (R, error)) func() (R, error) {
	return func() (R, error) {
		var out R
		err := t.Time(func() error {
			var ferr error
			out, ferr = fn()
			return ferr
		})
		return out, err
	}
}

// Wrap1 times every call of a one-argument function.
func Wrap1[A, R any](t *Timer, fn func(A) (R, error)) func(A) (R, error) {
	return func(a A) (R, error) {
		var out R
		err := t.Time(func() error {
			var ferr error
			out, ferr = fn(a)
			return ferr
		})
		return out, err
	}
}

// Wrap2 times every call of a two-argument function.
func Wrap2[A, B, R any](t *Timer, fn func(A, B) (R, error)) func(A, B) (R, error) {
	return func(a A, b B) (R, error) {
		var out R
		err := t.Time(func() error {
			var ferr error
			out, ferr = fn(a, b)
			return ferr
		})
		return out, err
	}
}
