package main

import (
	"fmt"
	"strings"

	"lessonlist/internal/oplog"
	"lessonlist/internal/ui"
)

const historyLimit = 20

// runHistory prints the most recent operation log entries, newest first.
func (a *app) runHistory(limit int) int {
	entries, err := oplog.Read(a.logDir, limit)
	if err != nil {
		ui.Error("failed to read operation log: %v", err)
		return 1
	}
	if len(entries) == 0 {
		ui.Info("No operations recorded yet")
		return 0
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp,
			e.Command,
			e.Status,
			historyArg(e, "lessons"),
			historyArg(e, "out"),
			fmt.Sprintf("%dms", e.Duration),
			e.Message,
		})
	}
	ui.Table([]string{"Time", "Command", "Status", "Lessons", "Output", "Took", "Message"}, rows)
	return 0
}

func historyArg(e oplog.Entry, key string) string {
	v, ok := e.Args[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
