package ui

import (
	"fmt"
	"io"
	"os"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// Out is where the message helpers print. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

// colorize wraps s in color only when Out is a terminal.
func colorize(color, s string) string {
	if !IsTerminal(Out) {
		return s
	}
	return color + s + Reset
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Fprintf(Out, colorize(Green, "✓ ")+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Fprintf(Out, colorize(Red, "✗ ")+format+"\n", args...)
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Fprintf(Out, colorize(Yellow, "! ")+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Fprintf(Out, colorize(Cyan, "→ ")+format+"\n", args...)
}

// Header prints a section header
func Header(text string) {
	fmt.Fprintf(Out, "\n%s\n", colorize(Cyan, text))
	fmt.Fprintln(Out, colorize(Gray, "─────────────────────────────────────────"))
}
