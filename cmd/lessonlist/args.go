package main

import (
	"fmt"
	"strings"
)

// invocation is the parsed command line.
type invocation struct {
	dirs       []string
	dryRun     bool
	verbose    bool
	diff       bool
	debug      bool
	history    bool
	help       bool
	version    bool
	configPath string
}

// parseArgs accepts flags anywhere; the remaining arguments are the
// lessons and output directories in that order.
func parseArgs(args []string) (invocation, error) {
	var inv invocation
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			inv.dirs = append(inv.dirs, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			inv.dirs = append(inv.dirs, arg)
			continue
		}

		switch arg {
		case "--dry-run", "-n":
			inv.dryRun = true
		case "--verbose", "-v":
			inv.verbose = true
		case "--diff", "-d":
			inv.diff = true
		case "--debug":
			inv.debug = true
		case "--history":
			inv.history = true
		case "--help", "-h":
			inv.help = true
		case "--version":
			inv.version = true
		case "--config":
			if i+1 >= len(args) {
				return inv, fmt.Errorf("--config requires a path argument")
			}
			inv.configPath = args[i+1]
			i++
		default:
			if v, ok := strings.CutPrefix(arg, "--config="); ok {
				if v == "" {
					return inv, fmt.Errorf("--config requires a path argument")
				}
				inv.configPath = v
				continue
			}
			return inv, fmt.Errorf("unknown option: %s", arg)
		}
	}

	// "help" and "version" work as bare words when nothing else is given.
	if len(inv.dirs) == 1 {
		switch inv.dirs[0] {
		case "help":
			inv.help = true
		case "version":
			inv.version = true
		}
	}
	return inv, nil
}
