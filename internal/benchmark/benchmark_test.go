package benchmark

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/MeKo-Tech/tally/internal/clock"
	"github.com/MeKo-Tech/tally/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuiteAdd(t *testing.T) {
	suite := NewSuite(nil)
	require.NotNil(t, suite.Registry())

	require.NoError(t, suite.Add("test_benchmark", func() error { return nil }))
	require.Len(t, suite.benchmarks, 1)
	assert.Equal(t, "test_benchmark", suite.benchmarks[0].name)
}

func TestSuiteAddRejectsBadTemplate(t *testing.T) {
	suite := NewSuite(nil, timer.WithTemplate("%d"))
	err := suite.Add("bad", func() error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestSuiteRun(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	reg := timer.NewRegistry()
	suite := NewSuite(reg, timer.WithClock(clk))

	require.NoError(t, suite.Add("success_test", func() error {
		clk.Advance(2 * time.Millisecond)
		return nil
	}))
	require.NoError(t, suite.Add("error_test", func() error {
		clk.Advance(time.Millisecond)
		return errors.New("test error")
	}))

	result := suite.Run("success_test", 5)
	assert.Equal(t, "success_test", result.Name)
	assert.Equal(t, 5, result.Iterations)
	require.NoError(t, result.Error)
	assert.Equal(t, 10*time.Millisecond, result.Duration)
	assert.Equal(t, 2*time.Millisecond, result.Average())

	total, ok := reg.Get("success_test")
	require.True(t, ok)
	assert.Equal(t, 10*time.Millisecond, total)

	result = suite.Run("error_test", 3)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "test error")
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, 1, reg.Count("error_test"), "the failing iteration is still timed")

	result = suite.Run("non_existent", 1)
	require.ErrorIs(t, result.Error, ErrNotFound)
}

func TestSuiteRunAccumulatesAcrossRuns(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	suite := NewSuite(timer.NewRegistry(), timer.WithClock(clk))
	require.NoError(t, suite.Add("acc", func() error {
		clk.Advance(time.Millisecond)
		return nil
	}))

	suite.Run("acc", 2)
	suite.Run("acc", 3)

	total, _ := suite.Registry().Get("acc")
	assert.Equal(t, 5*time.Millisecond, total)
	assert.Equal(t, 5, suite.Registry().Count("acc"))
}

func TestSuiteRunAll(t *testing.T) {
	suite := NewSuite(timer.NewRegistry())
	require.NoError(t, suite.Add("fast_test", func() error {
		time.Sleep(time.Millisecond)
		return nil
	}))
	require.NoError(t, suite.Add("slow_test", func() error {
		time.Sleep(5 * time.Millisecond)
		return nil
	}))

	results := suite.RunAll(3)
	require.Len(t, results, 2)
	assert.Equal(t, results, suite.Results())
	assert.Equal(t, "fast_test", results[0].Name)
	assert.Equal(t, "slow_test", results[1].Name)
	assert.GreaterOrEqual(t, results[1].Duration, 15*time.Millisecond)
	assert.Equal(t, []string{"fast_test", "slow_test"}, suite.Registry().Names())
}

func TestPrintResults(t *testing.T) {
	suite := NewSuite(nil)
	require.NoError(t, suite.Add("printed", func() error { return nil }))
	suite.RunAll(1)

	var buf bytes.Buffer
	suite.PrintResults(&buf)
	assert.Contains(t, buf.String(), "Benchmark Results:")
	assert.Contains(t, buf.String(), "printed: 1 iterations")
}

func TestSuiteLogsEveryIteration(t *testing.T) {
	var logged []string
	suite := NewSuite(nil, timer.WithLogger(func(msg string) { logged = append(logged, msg) }))
	require.NoError(t, suite.Add("logged", func() error { return nil }))

	suite.Run("logged", 4)
	assert.Len(t, logged, 4)
}

func TestGetMemoryStats(t *testing.T) {
	stats := GetMemoryStats()
	assert.Positive(t, stats.AllocBytes)
	assert.Positive(t, stats.SysBytes)

	str := stats.String()
	assert.Contains(t, str, "Alloc:")
	assert.Contains(t, str, "KB")
}

func TestResultString(t *testing.T) {
	result := Result{
		Name:         "test_result",
		Duration:     100 * time.Millisecond,
		Iterations:   10,
		MemoryBefore: MemoryStats{TotalAllocBytes: 1024},
		MemoryAfter:  MemoryStats{TotalAllocBytes: 3072},
	}

	str := result.String()
	assert.Contains(t, str, "test_result")
	assert.Contains(t, str, "10 iterations")
	assert.Contains(t, str, "avg: 10ms")
	assert.Contains(t, str, "total: 100ms")
	assert.Contains(t, str, "mem: +2 KB")

	errorResult := Result{Name: "error_result", Error: errors.New("test error")}
	str = errorResult.String()
	assert.Contains(t, str, "ERROR")
	assert.Contains(t, str, "test error")

	assert.Zero(t, Result{}.Average())
}

func BenchmarkMemoryStatsRetrieval(b *testing.B) {
	for range b.N {
		GetMemoryStats()
	}
}
