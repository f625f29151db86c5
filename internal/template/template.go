// Package template validates and renders timer messages.
//
// A template is a fmt format string with exactly one floating-point verb,
// which receives the elapsed time in seconds.
package template

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default is the message used when a timer is given no template.
const Default = "Task took: %0.6f seconds."

// ErrInvalidTemplate is returned for templates that do not hold exactly
// one floating-point verb.
var ErrInvalidTemplate = errors.New("invalid message template")

// Template is a validated message template.
type Template struct {
	raw string
}

// Parse validates s and returns the template.
func Parse(s string) (Template, error) {
	verbs := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		i++
		if i < len(s) && s[i] == '%' {
			continue
		}
		for i < len(s) && strings.IndexByte("+-# 0", s[i]) >= 0 {
			i++
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i < len(s) && s[i] == '.' {
			i++
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		}
		if i >= len(s) {
			return Template{}, fmt.Errorf("%w: %q ends inside a verb", ErrInvalidTemplate, s)
		}
		if strings.IndexByte("eEfFgG", s[i]) < 0 {
			return Template{}, fmt.Errorf("%w: %q uses verb %%%c, want a float verb", ErrInvalidTemplate, s, s[i])
		}
		verbs++
	}
	if verbs != 1 {
		return Template{}, fmt.Errorf("%w: %q has %d float verbs, want 1", ErrInvalidTemplate, s, verbs)
	}
	return Template{raw: s}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Template {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Render formats d as seconds.
func (t Template) Render(d time.Duration) string {
	return t.RenderSeconds(d.Seconds())
}

// RenderSeconds formats a raw seconds value.
func (t Template) RenderSeconds(seconds float64) string {
	return fmt.Sprintf(t.raw, seconds)
}

// String returns the source template.
func (t Template) String() string {
	return t.raw
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
