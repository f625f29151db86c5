package timer

import (
	"testing"
	"time"

	"github.com/MeKo-Tech/tally/internal/clock"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genDuration generates durations between 0 and 10 seconds.
func genDuration() gopter.Gen {
	return gen.Int64Range(0, int64(10*time.Second)).Map(func(n int64) time.Duration {
		return time.Duration(n)
	})
}

// TestStop_ElapsedMatchesClock verifies Stop returns exactly the clock advance and never a negative value.
func TestStop_ElapsedMatchesClock(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("elapsed equals advance and is non-negative", prop.ForAll(
		func(d time.Duration) bool {
			clk := clock.NewManual(time.Unix(0, 0))
			tm := MustNew(WithClock(clk), WithRegistry(NewRegistry()))
			if err := tm.Start(); err != nil {
				return false
			}
			clk.Advance(d)
			elapsed, err := tm.Stop()
			return err == nil && elapsed >= 0 && elapsed == d
		},
		genDuration(),
	))

	properties.TestingRun(t)
}

// TestStop_Accumulates verifies a named timer's registry value is the sum of its measurements.
func TestStop_Accumulates(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("registry total is the sum of stops", prop.ForAll(
		func(ds []time.Duration) bool {
			clk := clock.NewManual(time.Unix(0, 0))
			reg := NewRegistry()
			tm := MustNew(WithName("x"), WithClock(clk), WithRegistry(reg))

			var want time.Duration
			for _, d := range ds {
				if err := tm.Start(); err != nil {
					return false
				}
				clk.Advance(d)
				if _, err := tm.Stop(); err != nil {
					return false
				}
				want += d
			}

			total, ok := reg.Get("x")
			if len(ds) == 0 {
				return !ok
			}
			return ok && total == want && reg.Count("x") == len(ds)
		},
		gen.SliceOf(genDuration()),
	))

	properties.TestingRun(t)
}

// TestStop_ElapsedIsMonotonic verifies later stops of one start never report less time.
func TestStop_ElapsedIsMonotonic(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("longer advances give longer elapsed", prop.ForAll(
		func(a, b time.Duration) bool {
			clk := clock.NewManual(time.Unix(0, 0))
			first := MustNew(WithClock(clk), WithRegistry(NewRegistry()))
			second := MustNew(WithClock(clk), WithRegistry(NewRegistry()))
			_ = first.Start()
			_ = second.Start()
			clk.Advance(a)
			e1, _ := first.Stop()
			clk.Advance(b)
			e2, _ := second.Stop()
			return e2 >= e1
		},
		genDuration(),
		genDuration(),
	))

	properties.TestingRun(t)
}
