// Package ui prints colored terminal output for flowctl.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	Title   = color.New(color.FgHiCyan, color.Bold)
	Muted   = color.New(color.FgHiBlack)
	Section = color.New(color.FgCyan)
	Warn    = color.New(color.FgYellow)
	OK      = color.New(color.FgGreen)
	Err     = color.New(color.FgRed)
)

// Heading prints "flowctl — subtitle" followed by a blank line.
func Heading(subtitle string) {
	fmt.Printf("%s — %s\n\n", Title.Sprint("flowctl"), subtitle)
}

// Check renders a boolean as a colored mark.
func Check(ok bool) string {
	if ok {
		return OK.Sprint("✓")
	}
	return Err.Sprint("✗")
}

// Table writes rows to stdout under muted column headers. Nothing is printed
// for an empty table.
func Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	WriteTable(os.Stdout, headers, rows, Muted.Sprint)
}

// WriteTable pads every column to its widest cell. style decorates the header
// and rule lines.
func WriteTable(w io.Writer, headers []string, rows [][]string, style func(a ...any) string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], len([]rune(row[i])))
		}
	}

	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("─", n)
	}
	fmt.Fprintln(w, style(line(headers, widths)))
	fmt.Fprintln(w, style(line(rule, widths)))
	for _, row := range rows {
		fmt.Fprintln(w, line(row, widths))
	}
}

func line(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString("  ")
	for i := 0; i < len(cells) && i < len(widths); i++ {
		b.WriteString(cells[i])
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-len([]rune(cells[i]))+2))
		}
	}
	return strings.TrimRight(b.String(), " ")
}
