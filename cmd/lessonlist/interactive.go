package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"lessonlist/internal/ui"
)

// runInteractive opens the form. A lessons folder given as the only
// positional argument prefills the form; otherwise the last used folders do.
func (a *app) runInteractive(dirs ...string) int {
	if !ui.IsInteractive() {
		fmt.Fprintln(ui.Out, "Interactive mode needs a terminal.")
		printUsage()
		return 1
	}

	cfg := formConfig{
		opts:       a.opts,
		lessonsDir: a.cfg.LastLessonsDir,
		outputDir:  a.cfg.LastOutputDir,
		record:     a.record,
	}
	if len(dirs) > 0 {
		cfg.lessonsDir = dirs[0]
	}

	p := tea.NewProgram(newFormModel(cfg), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		ui.Error("%v", err)
		return 1
	}

	m, ok := finalModel.(formModel)
	if !ok || m.written == "" {
		return 0
	}

	ui.Success("Wrote %s", m.written)
	a.cfg.LastLessonsDir = m.lastLessons
	a.cfg.LastOutputDir = m.lastOutput
	if err := a.cfg.Save(); err != nil {
		a.logger.Warn("could not remember folders", "err", err)
	}
	return 0
}
