package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"lessonlist/internal/lesson"
	"lessonlist/internal/ui"
)

// runCLI implements `lessonlist <lessons_dir> <out_dir> [flags]`.
func (a *app) runCLI(inv invocation) int {
	lessonsDir, outDir := inv.dirs[0], inv.dirs[1]
	if len(inv.dirs) > 2 {
		ui.Warning("ignoring extra arguments: %s", strings.Join(inv.dirs[2:], " "))
	}

	if err := lesson.CheckDir(lessonsDir); err != nil {
		a.logger.Debug("lessons folder check failed", "err", err)
		fmt.Fprintln(ui.Out, "Lessons folder not found:", lessonsDir)
		return 1
	}
	if err := lesson.CheckDir(outDir); err != nil {
		a.logger.Debug("output folder check failed", "err", err)
		fmt.Fprintln(ui.Out, "Output folder not found:", outDir)
		return 1
	}

	cmd := "generate"
	if inv.dryRun {
		cmd = "dry-run"
	}
	args := map[string]any{"lessons": lessonsDir, "out": outDir}

	if ui.IsTerminal(ui.Out) {
		ui.HeaderBox("lessonlist "+cmd, "lessons: "+lessonsDir, "output: "+outDir)
	}

	start := time.Now()
	m, err := lesson.Discover(lessonsDir, a.opts)
	if err != nil {
		a.record(cmd, args, err, start)
		ui.Error("%v", err)
		return 1
	}
	args["lessons_found"] = len(m.Lessons)
	a.logger.Debug("discovery finished", "dir", lessonsDir, "lessons", len(m.Lessons))

	if inv.dryRun || inv.verbose {
		printEntries(m, time.Since(start))
	}
	if inv.diff {
		if err := a.printDiff(outDir, m); err != nil {
			a.record(cmd, args, err, start)
			ui.Error("%v", err)
			return 1
		}
	}

	if inv.dryRun {
		a.record(cmd, args, nil, start)
		fmt.Fprintln(ui.Out, "Dry-run: no file written.")
		return 0
	}

	path, err := lesson.Write(outDir, m, a.opts)
	a.record(cmd, args, err, start)
	if err != nil {
		ui.Error("%v", err)
		return 1
	}
	fmt.Fprintln(ui.Out, "Wrote", path)
	return 0
}

// printEntries lists detected lessons, one "- name | mapping=... | audio=..."
// line each. A terminal also gets a summary line.
func printEntries(m *lesson.Manifest, elapsed time.Duration) {
	fmt.Fprintln(ui.Out, "Detected lessons:")
	for _, e := range m.Lessons {
		fmt.Fprintf(ui.Out, "- %s | mapping=%s | audio=%s\n", e.Name, e.Mapping, e.Audio)
	}
	if !ui.IsTerminal(ui.Out) {
		return
	}

	mappings, audio := countCompanions(m)
	ui.SummaryLine("Scan", elapsed,
		ui.Metric{Label: "lessons", Count: len(m.Lessons)},
		ui.Metric{Label: "with mapping", Count: mappings},
		ui.Metric{Label: "with audio", Count: audio},
	)
}

// printDiff shows what writing m would change in outDir.
func (a *app) printDiff(outDir string, m *lesson.Manifest) error {
	newData, err := lesson.Marshal(m)
	if err != nil {
		return err
	}
	path := lesson.ManifestPath(outDir, a.opts)
	oldData, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read existing manifest: %w", err)
	}

	d := lesson.Diff(oldData, newData)
	if d == "" {
		ui.Info("%s is up to date", path)
		return nil
	}

	ui.Header("Changes to " + path)
	color := ui.IsTerminal(ui.Out)
	for _, line := range strings.Split(strings.TrimSuffix(d, "\n"), "\n") {
		switch {
		case color && strings.HasPrefix(line, "+ "):
			fmt.Fprintln(ui.Out, ui.Green+line+ui.Reset)
		case color && strings.HasPrefix(line, "- "):
			fmt.Fprintln(ui.Out, ui.Red+line+ui.Reset)
		default:
			fmt.Fprintln(ui.Out, line)
		}
	}
	return nil
}
