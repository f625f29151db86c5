package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportNamed(t *testing.T) {
	tm, _, reg := newTestTimer(t, WithTemplate("%f seconds."))
	reg.Add("x", 350*time.Millisecond)

	report, err := tm.Report("x")
	require.NoError(t, err)
	assert.Equal(t, "x: 0.350000 seconds.", report)

	_, err = tm.Report("y")
	require.ErrorIs(t, err, ErrUnknownTimer)
	assert.Contains(t, err.Error(), `"y"`)
}

func TestReportOneUsesCallersTemplate(t *testing.T) {
	named, _, reg := newTestTimer(t, WithName("x"), WithTemplate("%.1f s"))
	reg.Add("x", 2*time.Second)

	other := MustNew(WithRegistry(reg), WithTemplate("took %.3f"))

	mine, err := named.ReportOne("x")
	require.NoError(t, err)
	theirs, err := other.ReportOne("x")
	require.NoError(t, err)

	assert.Equal(t, "x: 2.0 s", mine)
	assert.Equal(t, "x: took 2.000", theirs)
}

func TestReportAll(t *testing.T) {
	tm, _, reg := newTestTimer(t)
	reg.Add("b", 200*time.Millisecond)
	reg.Add("a", 100*time.Millisecond)
	reg.Add("b", 150*time.Millisecond)

	report, err := tm.Report("")
	require.NoError(t, err)
	assert.Equal(t, "b: 0.35\na: 0.1\n", report)
	assert.False(t, tm.Running())
}

func TestReportAllDoesNotStopRunningTimer(t *testing.T) {
	tm, _, reg := newTestTimer(t)
	reg.Register("zero")
	require.NoError(t, tm.Start())

	report, err := tm.Report("")
	require.NoError(t, err)
	assert.Equal(t, "zero: 0\n", report)
	assert.True(t, tm.Running())
}

func TestReportFallsBackToStop(t *testing.T) {
	var logged []string
	tm, clk, _ := newTestTimer(t, WithLogger(func(msg string) { logged = append(logged, msg) }))
	require.NoError(t, tm.Start())
	clk.Advance(1500 * time.Millisecond)

	report, err := tm.Report("")
	require.NoError(t, err)

	assert.Equal(t, "Task took: 1.500000 seconds.", report)
	assert.False(t, tm.Running())
	assert.Equal(t, 1500*time.Millisecond, tm.Last())
	assert.Equal(t, []string{report}, logged)
}

func TestReportFallbackWhileIdle(t *testing.T) {
	tm, _, _ := newTestTimer(t)

	_, err := tm.Report("")
	require.ErrorIs(t, err, ErrNotRunning)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0.35", FormatSeconds(0.35))
	assert.Equal(t, "0", FormatSeconds(0))
	assert.Equal(t, "12.5", FormatSeconds(12.5))
}
