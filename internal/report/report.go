// Package report renders registry snapshots for people and machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/tally/internal/timer"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatTable, FormatJSON, FormatYAML}
}

// Row is the serialized form of a registry entry.
type Row struct {
	Name    string  `json:"name" yaml:"name"`
	Seconds float64 `json:"seconds" yaml:"seconds"`
	Count   int     `json:"count" yaml:"count"`
}

// Document is the top-level JSON and YAML payload.
type Document struct {
	Timers []Row `json:"timers" yaml:"timers"`
}

// Rows converts registry entries to rows, preserving order.
func Rows(entries []timer.Entry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{Name: e.Name, Seconds: e.Total.Seconds(), Count: e.Count})
	}
	return rows
}

// Write renders entries to w in the given format.
func Write(w io.Writer, entries []timer.Entry, format string) error {
	rows := Rows(entries)

	switch strings.ToLower(format) {
	case FormatText, "":
		return writeText(w, rows)
	case FormatTable:
		return writeTable(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Document{Timers: rows}); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Document{Timers: rows}); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}

func writeText(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.Name, timer.FormatSeconds(r.Seconds)); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, rows []Row) error {
	table := tablewriter.NewWriter(w)
	table.Header("Timer", "Seconds", "Count")
	for _, r := range rows {
		if err := table.Append([]string{r.Name, fmt.Sprintf("%.6f", r.Seconds), strconv.Itoa(r.Count)}); err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
