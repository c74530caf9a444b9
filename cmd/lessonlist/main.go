package main

import (
	"fmt"
	"os"

	"lessonlist/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one invocation and returns the process exit code.
func run(args []string) int {
	inv, err := parseArgs(args)
	if err != nil {
		ui.Error("%v", err)
		printUsage()
		return 1
	}

	switch {
	case inv.help:
		printUsage()
		return 0
	case inv.version:
		fmt.Fprintf(ui.Out, "lessonlist %s\n", version)
		return 0
	}

	a, err := newApp(inv)
	if err != nil {
		ui.Error("%v", err)
		return 1
	}

	if inv.history {
		return a.runHistory(historyLimit)
	}
	// Two positionals select CLI mode; anything less opens the form.
	if len(inv.dirs) >= 2 {
		return a.runCLI(inv)
	}
	return a.runInteractive(inv.dirs...)
}

func printUsage() {
	fmt.Fprintln(ui.Out, `lessonlist - Generate json_list.json for a folder of lessons

Usage:
  lessonlist <lessons_dir> <out_dir> [options]
  lessonlist                          Open the interactive form

Options:
  -n, --dry-run        List detected lessons without writing
  -v, --verbose        List detected lessons, then write
  -d, --diff           Show changes against the existing json_list.json
      --config PATH    Use a different config file
      --debug          Print diagnostic logs to stderr
      --history        Show recent generate runs
      --version        Show version
  -h, --help           Show this help

Examples:
  lessonlist ./lessons ./dist
  lessonlist ./lessons ./dist --dry-run
  lessonlist ./lessons ./dist -n -d`)
}
