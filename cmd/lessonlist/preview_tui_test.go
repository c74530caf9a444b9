package main

import (
	"testing"

	"github.com/charmbracelet/x/ansi"

	"lessonlist/internal/lesson"
)

func TestPreviewItem_Title(t *testing.T) {
	item := previewItem{entry: lesson.Entry{Name: "x.json"}}
	if got := item.Title(); got != "x.json  |  mapping:  |  audio:" {
		t.Errorf("Title() = %q", got)
	}
	if item.FilterValue() != "x.json" {
		t.Errorf("FilterValue() = %q", item.FilterValue())
	}
}

func TestPreviewItem_TitleTruncates(t *testing.T) {
	item := previewItem{
		entry: lesson.Entry{Name: "a-very-long-lesson-name.json", Mapping: "mapping_a-very-long-lesson-name.json"},
		width: 20,
	}
	got := item.Title()
	if w := ansi.StringWidth(got); w > 20 {
		t.Errorf("Title() width = %d, want <= 20 (%q)", w, got)
	}
}

func TestPreviewModel_Resize(t *testing.T) {
	m := &lesson.Manifest{Lessons: []lesson.Entry{{Name: "a.json"}, {Name: "b.json"}}}
	p := newPreviewModel(m, "/lessons", 0, 0)
	if p.list.Title != "Preview detected lessons (2)" {
		t.Errorf("Title = %q", p.list.Title)
	}

	p.setSize(30, 10)
	item := p.list.Items()[0].(previewItem)
	if item.width != 26 {
		t.Errorf("item width = %d, want 26", item.width)
	}
}
