package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/x/ansi"

	"lessonlist/internal/lesson"
)

// previewItem is one detected lesson row in the preview list.
type previewItem struct {
	entry lesson.Entry
	width int // 0 = no truncation
}

func (i previewItem) Title() string {
	row := fmt.Sprintf("%s  |  mapping:%s  |  audio:%s", i.entry.Name, i.entry.Mapping, i.entry.Audio)
	if i.width > 0 {
		row = ansi.Truncate(row, i.width, "…")
	}
	return row
}

func (i previewItem) Description() string { return "" }
func (i previewItem) FilterValue() string { return i.entry.Name }

// previewModel lists the lessons a scan found, before anything is written.
type previewModel struct {
	list       list.Model
	manifest   *lesson.Manifest
	lessonsDir string
}

func newPreviewModel(m *lesson.Manifest, lessonsDir string, width, height int) previewModel {
	delegate := list.NewDefaultDelegate()
	configureDelegate(&delegate)

	l := list.New(makePreviewItems(m, 0), delegate, 0, 0)
	l.Title = fmt.Sprintf("Preview detected lessons (%d)", len(m.Lessons))
	l.Styles.Title = tc.Title
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("lesson", "lessons")
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	p := previewModel{list: l, manifest: m, lessonsDir: lessonsDir}
	p.setSize(width, height)
	return p
}

func makePreviewItems(m *lesson.Manifest, width int) []list.Item {
	items := make([]list.Item, len(m.Lessons))
	for i, e := range m.Lessons {
		items[i] = previewItem{entry: e, width: width}
	}
	return items
}

func (p *previewModel) setSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.list.SetSize(width, height-3)
	p.list.SetItems(makePreviewItems(p.manifest, width-4))
}

func (p previewModel) filtering() bool {
	return p.list.FilterState() == list.Filtering
}

func (p previewModel) View() string {
	var b strings.Builder
	b.WriteString(p.list.View())
	b.WriteString("\n")
	b.WriteString(tc.Dim.Render("  from " + p.lessonsDir))
	b.WriteString("\n")
	b.WriteString(tc.Help.Render("↑↓ navigate  w write manifest  / filter  esc back"))
	b.WriteString("\n")
	return b.String()
}
