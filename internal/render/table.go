// Copyright 2026 The Callsight Authors
// SPDX-License-Identifier: MIT

// Package render draws the call-history table for terminal output.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// ColorFunc maps a cell value to a colored string. If nil, no color is applied.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc
}

// Table renders aligned text tables to an io.Writer.
type Table struct {
	columns []Column
	rows    [][]string
}

// NewTable creates a table with the given column definitions.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Values beyond the column count are silently ignored;
// missing values are treated as empty strings.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		}
	}
	t.rows = append(t.rows, row)
}

// Render writes the table to w with computed column widths.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = len(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	bold := color.New(color.Bold)
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = bold.Sprint(pad(col.Header, widths[i], col.Align))
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(headers, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	seps := make([]string, len(t.columns))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(seps, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	for _, row := range t.rows {
		parts := make([]string, len(t.columns))
		for i, col := range t.columns {
			val := row[i]
			display := val
			if col.Color != nil {
				display = col.Color(val)
			}
			// Padding is based on raw value length, not ANSI-colored length.
			parts[i] = padDisplay(display, len(val), widths[i], col.Align)
		}
		if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}

	return nil
}

// Truncate shortens s to max runes, appending "..." when it cuts.
func Truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// ColorSentiment colors sentiment labels for terminal output.
func ColorSentiment(val string) string {
	switch val {
	case "Positive":
		return color.New(color.FgGreen).Sprint(val)
	case "Negative":
		return color.New(color.FgRed).Sprint(val)
	case "Neutral":
		return color.New(color.FgYellow).Sprint(val)
	default:
		return val
	}
}

func pad(val string, width int, align Alignment) string {
	return padDisplay(val, len(val), width, align)
}

func padDisplay(display string, rawLen, width int, align Alignment) string {
	n := width - rawLen
	if n < 0 {
		n = 0
	}
	if align == AlignRight {
		return strings.Repeat(" ", n) + display
	}
	return display + strings.Repeat(" ", n)
}
