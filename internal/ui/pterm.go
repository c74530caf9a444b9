package ui

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// displayWidth returns the visible width of a string (excluding ANSI codes, handling wide chars)
func displayWidth(s string) int {
	clean := ansiRegex.ReplaceAllString(s, "")
	return runewidth.StringWidth(clean)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// padLines pads every line to the widest display width so pterm boxes
// render with straight edges.
func padLines(lines []string) string {
	maxLen := 0
	for _, line := range lines {
		if w := displayWidth(line); w > maxLen {
			maxLen = w
		}
	}

	var b strings.Builder
	for i, line := range lines {
		b.WriteString(line)
		if w := displayWidth(line); w < maxLen {
			b.WriteString(strings.Repeat(" ", maxLen-w))
		}
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// HeaderBox prints a command header box around lines
func HeaderBox(command string, lines ...string) {
	if !IsTerminal(Out) {
		fmt.Fprintln(Out, command)
		for _, line := range lines {
			fmt.Fprintln(Out, line)
		}
		return
	}

	box := pterm.DefaultBox.
		WithTitle(pterm.Cyan(command)).
		WithTitleTopLeft()
	fmt.Fprintln(Out, box.Sprint(padLines(lines)))
}

// Table prints rows under a header. Without a terminal the rows are
// tab-separated so the output stays greppable.
func Table(header []string, rows [][]string) {
	if !IsTerminal(Out) {
		fmt.Fprintln(Out, strings.Join(header, "\t"))
		for _, row := range rows {
			fmt.Fprintln(Out, strings.Join(row, "\t"))
		}
		return
	}

	data := pterm.TableData{header}
	data = append(data, rows...)
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		fmt.Fprintln(Out, strings.Join(header, "\t"))
		return
	}
	fmt.Fprintln(Out, s)
}

// Metric is one "<count> <label>" part of a summary line.
type Metric struct {
	Label string
	Count int
}

func formatSummaryLine(action string, elapsed time.Duration, metrics ...Metric) string {
	parts := make([]string, 0, len(metrics))
	for _, m := range metrics {
		parts = append(parts, fmt.Sprintf("%d %s", m.Count, m.Label))
	}
	line := fmt.Sprintf("%s complete: %s", action, strings.Join(parts, ", "))
	if elapsed > 0 {
		line += fmt.Sprintf(" (%.1fs)", elapsed.Seconds())
	}
	return line
}

// SummaryLine prints "<action> complete: ..." with a success mark.
func SummaryLine(action string, elapsed time.Duration, metrics ...Metric) {
	line := formatSummaryLine(action, elapsed, metrics...)
	if IsTerminal(Out) {
		fmt.Fprintln(Out, pterm.Success.Sprint(line))
		return
	}
	fmt.Fprintf(Out, "✓ %s\n", line)
}
