package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

const formHelpMarkdown = `# lessonlist

Builds **json_list.json** from a folder of lesson files.

| Key | Action |
|-----|--------|
| tab / shift+tab | move between fields |
| enter | browse for the focused folder, or press the focused button |
| ctrl+o | browse for the focused folder |
| ctrl+p | preview detected lessons |
| ctrl+g | generate json_list.json |
| f1 | toggle this help |
| ? | toggle this help while a button is focused |
| esc | quit |

## Folder browser

| Key | Action |
|-----|--------|
| enter | choose the highlighted folder |
| s | choose the folder being shown |
| h / left | go up one folder |
| esc | cancel |

## Preview

| Key | Action |
|-----|--------|
| w | write the previewed json_list.json |
| / | filter |
| esc | back to the form |
`

// helpGlamourStyle is the dark style without document margins so the help
// fits the alt screen.
func helpGlamourStyle() ansi.StyleConfig {
	s := styles.DarkStyleConfig
	zero := uint(0)
	s.Document.Margin = &zero
	s.H1.StylePrimitive.BackgroundColor = nil
	s.H1.StylePrimitive.Color = stringPtr("6")
	s.H1.StylePrimitive.Bold = boolPtr(true)
	s.H1.StylePrimitive.Prefix = "# "
	s.H1.StylePrimitive.Suffix = ""
	s.Code.StylePrimitive.BackgroundColor = nil
	return s
}

func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }

// renderMarkdown renders markdown text with glamour for terminal display.
func renderMarkdown(text string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(helpGlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(rendered)
}
