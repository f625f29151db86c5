package timer

import (
	"fmt"
	"strconv"
	"strings"
)

// ReportOne renders the accumulated value of name with this timer's
// template, as "name: message".
func (t *Timer) ReportOne(name string) (string, error) {
	total, ok := t.registry.Get(name)
	if !ok {
		return "", fmt.Errorf("report %q: %w", name, ErrUnknownTimer)
	}
	return fmt.Sprintf("%s: %s", name, t.template.Render(total)), nil
}

// Report reports the registry.
//
// With a name it is ReportOne. Without one it lists every entry as
// "name: seconds\n" in insertion order. If the registry is empty it stops
// this timer instead and returns the rendered message of that
// measurement, failing with ErrNotRunning when the timer is idle.
func (t *Timer) Report(name string) (string, error) {
	if name != "" {
		return t.ReportOne(name)
	}

	entries := t.registry.Snapshot()
	if len(entries) == 0 {
		elapsed, err := t.Stop()
		if err != nil {
			return "", err
		}
		return t.template.Render(elapsed), nil
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Name)
		b.WriteString(": ")
		b.WriteString(FormatSeconds(e.Total.Seconds()))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// FormatSeconds renders seconds as the shortest decimal that reads back
// to the same value, e.g. 0.35.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
