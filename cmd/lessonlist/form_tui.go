package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lessonlist/internal/lesson"
)

type formFocus int

const (
	focusLessons formFocus = iota
	focusOutput
	focusPreview
	focusGenerate
	focusCount
)

type formView int

const (
	viewForm formView = iota
	viewPicker
	viewPreview
	viewHelp
)

// pickerChrome is the number of lines the picker view uses around the
// file list.
const pickerChrome = 5

const (
	msgInvalidLessons = "Please select a valid lessons folder"
	msgInvalidOutput  = "Please select a valid output folder"
)

// dialog is a modal message; any confirming key dismisses it.
type dialog struct {
	title string
	body  string
	isErr bool
}

func errorDialog(body string) *dialog { return &dialog{title: "Error", body: body, isErr: true} }

func doneDialog(path string) *dialog {
	return &dialog{title: "Done", body: fmt.Sprintf("%s written to:\n%s", filepath.Base(path), path)}
}

// recordFunc matches app.record so the form can log operations.
type recordFunc func(cmd string, args map[string]any, err error, start time.Time)

// formConfig seeds the interactive form.
type formConfig struct {
	opts       lesson.Options
	lessonsDir string
	outputDir  string
	record     recordFunc
}

// formModel is the bubbletea model for the interactive generator.
type formModel struct {
	opts   lesson.Options
	record recordFunc

	inputs []textinput.Model // focusLessons, focusOutput
	focus  formFocus
	view   formView

	picker     filepicker.Model
	pickTarget formFocus

	preview previewModel
	dialog  *dialog

	width, height int

	// set after a successful write
	written     string
	lastLessons string
	lastOutput  string

	quitting bool
}

func newFormModel(cfg formConfig) formModel {
	newInput := func(placeholder, value string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = ""
		ti.CharLimit = 4096
		ti.Width = 50
		ti.SetValue(value)
		ti.CursorEnd()
		return ti
	}

	m := formModel{
		opts:   cfg.opts,
		record: cfg.record,
		inputs: []textinput.Model{
			newInput("folder with lesson files", cfg.lessonsDir),
			newInput("folder for json_list.json", cfg.outputDir),
		},
	}
	m.setFocus(focusLessons)
	return m
}

func (m *formModel) setFocus(f formFocus) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if formFocus(i) == f {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m formModel) lessonsDir() string { return strings.TrimSpace(m.inputs[focusLessons].Value()) }
func (m formModel) outputDir() string  { return strings.TrimSpace(m.inputs[focusOutput].Value()) }

// checkDirs validates both folders, returning the dialog to show on failure.
func (m formModel) checkDirs() (string, string, *dialog) {
	ld, od := m.lessonsDir(), m.outputDir()
	if lesson.CheckDir(ld) != nil {
		return "", "", errorDialog(msgInvalidLessons)
	}
	if lesson.CheckDir(od) != nil {
		return "", "", errorDialog(msgInvalidOutput)
	}
	return ld, od, nil
}

func (m formModel) recordOp(cmd, ld, od string, man *lesson.Manifest, err error, start time.Time) {
	if m.record == nil {
		return
	}
	args := map[string]any{"lessons": ld, "out": od, "interactive": true}
	if man != nil {
		args["lessons_found"] = len(man.Lessons)
	}
	m.record(cmd, args, err, start)
}

func (m formModel) Init() tea.Cmd { return textinput.Blink }

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
		switch m.view {
		case viewPreview:
			m.preview.setSize(m.width, m.height)
		case viewPicker:
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - pickerChrome})
			return m, cmd
		}
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.dialog != nil {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "enter", "esc", " ", "q":
				m.dialog = nil
			}
		}
		return m, nil
	}

	switch m.view {
	case viewPicker:
		return m.updatePicker(msg)
	case viewPreview:
		return m.updatePreview(msg)
	case viewHelp:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc", "q", "f1", "?", "enter":
				m.view = viewForm
			}
		}
		return m, nil
	}
	return m.updateForm(msg)
}

func (m formModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	onButton := m.focus >= focusPreview
	switch key.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "down":
		cmd := m.setFocus((m.focus + 1) % focusCount)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, cmd
	case "left", "right":
		if onButton {
			if m.focus == focusPreview {
				cmd := m.setFocus(focusGenerate)
				return m, cmd
			}
			cmd := m.setFocus(focusPreview)
			return m, cmd
		}
	case "ctrl+o":
		target := m.focus
		if onButton {
			target = focusLessons
		}
		return m.openPicker(target)
	case "ctrl+p":
		return m.doPreview()
	case "ctrl+g":
		return m.doGenerate()
	case "f1":
		m.view = viewHelp
		return m, nil
	case "?":
		if onButton {
			m.view = viewHelp
			return m, nil
		}
	case "enter":
		switch m.focus {
		case focusLessons, focusOutput:
			return m.openPicker(m.focus)
		case focusPreview:
			return m.doPreview()
		case focusGenerate:
			return m.doGenerate()
		}
	}
	return m.updateInputs(msg)
}

func (m formModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= focusPreview {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) doGenerate() (tea.Model, tea.Cmd) {
	ld, od, d := m.checkDirs()
	if d != nil {
		m.dialog = d
		return m, nil
	}

	start := time.Now()
	man, err := lesson.Discover(ld, m.opts)
	var path string
	if err == nil {
		path, err = lesson.Write(od, man, m.opts)
	}
	m.recordOp("generate", ld, od, man, err, start)
	if err != nil {
		m.dialog = errorDialog(err.Error())
		return m, nil
	}
	m.markWritten(path, ld, od)
	return m, nil
}

func (m formModel) doPreview() (tea.Model, tea.Cmd) {
	ld, _, d := m.checkDirs()
	if d != nil {
		m.dialog = d
		return m, nil
	}

	man, err := lesson.Discover(ld, m.opts)
	if err != nil {
		m.dialog = errorDialog(err.Error())
		return m, nil
	}
	m.preview = newPreviewModel(man, ld, m.width, m.height)
	m.view = viewPreview
	return m, nil
}

func (m *formModel) markWritten(path, ld, od string) {
	m.written = path
	m.lastLessons = ld
	m.lastOutput = od
	m.dialog = doneDialog(path)
}

func (m formModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.preview.filtering() {
		switch key.String() {
		case "esc", "q":
			m.view = viewForm
			return m, nil
		case "w":
			od := m.outputDir()
			if lesson.CheckDir(od) != nil {
				m.dialog = errorDialog(msgInvalidOutput)
				return m, nil
			}
			start := time.Now()
			path, err := lesson.Write(od, m.preview.manifest, m.opts)
			m.recordOp("preview-write", m.preview.lessonsDir, od, m.preview.manifest, err, start)
			if err != nil {
				m.dialog = errorDialog(err.Error())
				return m, nil
			}
			m.markWritten(path, m.preview.lessonsDir, od)
			m.view = viewForm
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.preview.list, cmd = m.preview.list.Update(msg)
	return m, cmd
}

// pickerStartDir opens the browser at the field's folder when it is valid,
// otherwise at the working directory.
func pickerStartDir(value string) string {
	value = strings.TrimSpace(value)
	if lesson.CheckDir(value) == nil {
		if abs, err := filepath.Abs(value); err == nil {
			return abs
		}
		return value
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	home, _ := os.UserHomeDir()
	return home
}

func (m formModel) openPicker(target formFocus) (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.ShowHidden = false
	fp.CurrentDirectory = pickerStartDir(m.inputs[target].Value())
	if m.height > pickerChrome {
		fp, _ = fp.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - pickerChrome})
	}

	m.picker = fp
	m.pickTarget = target
	m.view = viewPicker
	return m, fp.Init()
}

func (m formModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.view = viewForm
			return m, nil
		case "s":
			return m.choosePath(m.picker.CurrentDirectory)
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		return m.choosePath(path)
	}
	return m, cmd
}

func (m formModel) choosePath(path string) (tea.Model, tea.Cmd) {
	m.inputs[m.pickTarget].SetValue(path)
	m.inputs[m.pickTarget].CursorEnd()
	m.view = viewForm
	cmd := m.setFocus(m.pickTarget)
	return m, cmd
}

func (m formModel) View() string {
	if m.quitting {
		return ""
	}

	if m.dialog != nil {
		return m.renderDialog()
	}

	switch m.view {
	case viewPicker:
		return m.renderPicker()
	case viewPreview:
		return m.preview.View()
	case viewHelp:
		var b strings.Builder
		b.WriteString(renderMarkdown(formHelpMarkdown, m.width-4))
		b.WriteString("\n\n")
		b.WriteString(tc.Help.Render("esc back"))
		b.WriteString("\n")
		return b.String()
	}
	return m.renderForm()
}

func (m formModel) renderForm() string {
	var b strings.Builder
	b.WriteString(tc.Title.Render("Generate json_list.json"))
	b.WriteString("\n\n")

	labels := []string{"Lessons folder:", "Output folder:"}
	for i, label := range labels {
		l := tc.Label.Render(label)
		if m.focus == formFocus(i) {
			l = tc.Focused.Width(16).Render(label)
		}
		b.WriteString("  " + l + m.inputs[i].View() + "\n")
	}
	b.WriteString("\n")

	button := func(text string, f formFocus) string {
		if m.focus == f {
			return tc.ButtonActive.Render(text)
		}
		return tc.Button.Render(text)
	}
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top,
		button("Preview", focusPreview), "  ", button("Generate json_list.json", focusGenerate)))
	b.WriteString("\n\n")

	if m.written != "" {
		b.WriteString(tc.Green.Render("  ✓ last written: " + m.written))
		b.WriteString("\n")
	}
	b.WriteString(tc.Help.Render("tab move  enter browse/press  ctrl+p preview  ctrl+g generate  f1 help  esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m formModel) renderPicker() string {
	title := "Select lessons folder"
	if m.pickTarget == focusOutput {
		title = "Select output folder"
	}

	var b strings.Builder
	b.WriteString(tc.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(tc.Dim.Render("  " + m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(tc.Help.Render("enter choose highlighted  s choose this folder  h up  esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m formModel) renderDialog() string {
	style := tc.DialogOK
	title := tc.Green.Bold(true).Render(m.dialog.title)
	if m.dialog.isErr {
		style = tc.DialogErr
		title = tc.Red.Bold(true).Render(m.dialog.title)
	}
	box := style.Render(title + "\n\n" + m.dialog.body + "\n\n" + tc.Faint.Render("enter to close"))
	if m.width <= 0 || m.height <= 0 {
		return box + "\n"
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
