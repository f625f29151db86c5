// Package benchmark runs named functions repeatedly under timers and
// records time and memory for each run.
package benchmark

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/MeKo-Tech/tally/internal/timer"
)

// ErrNotFound is returned when running a benchmark that was never added.
var ErrNotFound = errors.New("benchmark not found")

// MemoryStats holds memory usage statistics.
type MemoryStats struct {
	AllocBytes      uint64  // Currently allocated bytes
	TotalAllocBytes uint64  // Total allocated bytes (cumulative)
	SysBytes        uint64  // Total bytes from system
	NumGC           uint32  // Number of GC runs
	GCCPUFraction   float64 // Fraction of CPU time spent in GC
}

// GetMemoryStats returns current memory statistics.
func GetMemoryStats() MemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MemoryStats{
		AllocBytes:      m.Alloc,
		TotalAllocBytes: m.TotalAlloc,
		SysBytes:        m.Sys,
		NumGC:           m.NumGC,
		GCCPUFraction:   m.GCCPUFraction,
	}
}

// String returns a formatted string representation of memory stats.
func (m MemoryStats) String() string {
	return fmt.Sprintf("Alloc: %d KB, Total: %d KB, Sys: %d KB, GC: %d (%.2f%% CPU)",
		m.AllocBytes/1024,
		m.TotalAllocBytes/1024,
		m.SysBytes/1024,
		m.NumGC,
		m.GCCPUFraction*100)
}

// Result holds the outcome of running one benchmark.
type Result struct {
	Name         string
	Duration     time.Duration // sum of the completed iterations
	Iterations   int           // iterations that ran, including a failing one
	MemoryBefore MemoryStats
	MemoryAfter  MemoryStats
	Error        error
}

// Average returns the mean duration per iteration.
func (r Result) Average() time.Duration {
	if r.Iterations == 0 {
		return 0
	}
	return r.Duration / time.Duration(r.Iterations)
}

// String returns a formatted string representation of the result.
func (r Result) String() string {
	if r.Error != nil {
		return fmt.Sprintf("%s: ERROR - %v", r.Name, r.Error)
	}

	memDiff := int64(r.MemoryAfter.TotalAllocBytes) - int64(r.MemoryBefore.TotalAllocBytes) //nolint:gosec // G115: Safe conversion for memory display

	return fmt.Sprintf("%s: %d iterations, avg: %v, total: %v, mem: +%d KB",
		r.Name, r.Iterations, r.Average(), r.Duration, memDiff/1024)
}

type benchmark struct {
	name  string
	timer *timer.Timer
	fn    func() error
}

// Suite manages named benchmarks. Each benchmark owns a timer named after
// it, so every iteration is accumulated in the suite's registry.
type Suite struct {
	registry   *timer.Registry
	opts       []timer.Option
	benchmarks []*benchmark
	results    []Result
	mu         sync.Mutex
}

// NewSuite creates a suite accumulating into reg. opts are applied to
// every benchmark timer (template, logger, clock).
func NewSuite(reg *timer.Registry, opts ...timer.Option) *Suite {
	if reg == nil {
		reg = timer.NewRegistry()
	}
	return &Suite{registry: reg, opts: opts}
}

// Registry returns the registry the suite accumulates into.
func (s *Suite) Registry() *timer.Registry {
	return s.registry
}

// Add registers fn under name.
func (s *Suite) Add(name string, fn func() error) error {
	opts := append([]timer.Option{timer.WithName(name), timer.WithRegistry(s.registry)}, s.opts...)
	tm, err := timer.New(opts...)
	if err != nil {
		return fmt.Errorf("benchmark %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.benchmarks = append(s.benchmarks, &benchmark{name: name, timer: tm, fn: fn})
	return nil
}

// Run runs one benchmark for the given number of iterations, stopping at
// the first failing iteration.
func (s *Suite) Run(name string, iterations int) Result {
	s.mu.Lock()
	var found *benchmark
	for _, b := range s.benchmarks {
		if b.name == name {
			found = b
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return Result{Name: name, Error: fmt.Errorf("%w: %q", ErrNotFound, name)}
	}
	return s.run(found, iterations)
}

// RunAll runs every benchmark in insertion order.
func (s *Suite) RunAll(iterations int) []Result {
	s.mu.Lock()
	benchmarks := make([]*benchmark, len(s.benchmarks))
	copy(benchmarks, s.benchmarks)
	s.mu.Unlock()

	results := make([]Result, 0, len(benchmarks))
	for _, b := range benchmarks {
		results = append(results, s.run(b, iterations))
	}

	s.mu.Lock()
	s.results = results
	s.mu.Unlock()
	return results
}

// Results returns the results of the last RunAll.
func (s *Suite) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// PrintResults writes formatted results of the last RunAll to w.
func (s *Suite) PrintResults(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Benchmark Results:")
	_, _ = fmt.Fprintln(w, "==================")
	for _, result := range s.Results() {
		_, _ = fmt.Fprintln(w, result.String())
	}
}

func (s *Suite) run(b *benchmark, iterations int) Result {
	// Force garbage collection before measuring
	runtime.GC()
	result := Result{Name: b.name, MemoryBefore: GetMemoryStats()}

	timed := timer.Wrap(b.timer, b.fn)
	for range iterations {
		result.Iterations++
		before := s.registry.Count(b.name)
		err := timed()
		if s.registry.Count(b.name) > before {
			result.Duration += b.timer.Last()
		}
		if err != nil {
			result.Error = err
			break
		}
	}

	result.MemoryAfter = GetMemoryStats()
	return result
}
