package lesson

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_WithCompanions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.json"))
	touch(t, filepath.Join(dir, "mapping_a.json"))
	mkdir(t, filepath.Join(dir, "audio_a"))

	m, err := Discover(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{Name: "a.json", Mapping: "mapping_a.json", Audio: "audio_a"}}
	if !reflect.DeepEqual(m.Lessons, want) {
		t.Errorf("Lessons = %+v, want %+v", m.Lessons, want)
	}
}

func TestDiscover_NoCompanions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "x.json"))

	m, err := Discover(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{Name: "x.json"}}
	if !reflect.DeepEqual(m.Lessons, want) {
		t.Errorf("Lessons = %+v, want %+v", m.Lessons, want)
	}
}

func TestDiscover_ExcludesGeneratedFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "json_list.json"))
	touch(t, filepath.Join(dir, "JSON_LIST.JSON"))
	touch(t, filepath.Join(dir, "mapping_orphan.json"))
	touch(t, filepath.Join(dir, "Mapping_Upper.json"))
	touch(t, filepath.Join(dir, "lesson.json"))

	m, err := Discover(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Lessons) != 1 || m.Lessons[0].Name != "lesson.json" {
		t.Errorf("expected only lesson.json, got %+v", m.Lessons)
	}
}

func TestDiscover_IgnoresOtherExtensionsAndDirs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "lesson.JSON"))
	mkdir(t, filepath.Join(dir, "folder.json"))
	touch(t, filepath.Join(dir, "nested", "deep.json"))

	m, err := Discover(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Lessons) != 1 || m.Lessons[0].Name != "lesson.JSON" {
		t.Errorf("expected only lesson.JSON, got %+v", m.Lessons)
	}
}

func TestDiscover_CaseInsensitiveOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"beta.json", "Alpha.json", "gamma.json", "Delta.json"} {
		touch(t, filepath.Join(dir, name))
	}

	m, err := Discover(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range m.Lessons {
		got = append(got, e.Name)
	}
	want := []string{"Alpha.json", "beta.json", "Delta.json", "gamma.json"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDiscover_CaseFoldedOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"strasse2.json", "Straße.json"} {
		touch(t, filepath.Join(dir, name))
	}

	m, err := Discover(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Lessons[0].Name; got != "Straße.json" {
		t.Errorf("first lesson = %q, want Straße.json (ß folds to ss)", got)
	}
}

func TestDiscover_AudioInParentDir(t *testing.T) {
	root := t.TempDir()
	lessons := filepath.Join(root, "lessons")
	touch(t, filepath.Join(lessons, "intro.json"))
	mkdir(t, filepath.Join(root, "audio_intro"))

	m, err := Discover(lessons+string(filepath.Separator), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Lessons[0].Audio; got != "audio_intro" {
		t.Errorf("Audio = %q, want %q", got, "audio_intro")
	}
}

func TestDiscover_CompanionKindsMustMatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.json"))
	// mapping must be a file, audio must be a directory
	mkdir(t, filepath.Join(dir, "mapping_a.json"))
	touch(t, filepath.Join(dir, "audio_a"))

	m, err := Discover(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{Name: "a.json"}}
	if !reflect.DeepEqual(m.Lessons, want) {
		t.Errorf("Lessons = %+v, want %+v", m.Lessons, want)
	}
}

func TestDiscover_CustomOptions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "one.yaml"))
	touch(t, filepath.Join(dir, "map-one.yaml"))
	touch(t, filepath.Join(dir, "index.yaml"))
	mkdir(t, filepath.Join(dir, "snd-one"))

	opts := Options{Ext: "yaml", MappingPrefix: "map-", AudioPrefix: "snd-", ManifestName: "index.yaml"}
	m, err := Discover(dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{Name: "one.yaml", Mapping: "map-one.yaml", Audio: "snd-one"}}
	if !reflect.DeepEqual(m.Lessons, want) {
		t.Errorf("Lessons = %+v, want %+v", m.Lessons, want)
	}
}

func TestDiscover_EmptyDirYieldsEmptySlice(t *testing.T) {
	m, err := Discover(t.TempDir(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if m.Lessons == nil {
		t.Fatal("expected non-nil Lessons slice")
	}
	if len(m.Lessons) != 0 {
		t.Errorf("expected 0 lessons, got %d", len(m.Lessons))
	}
}

func TestDiscover_MissingDirReturnsError(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), Options{})
	if err == nil {
		t.Fatal("expected error for missing dir")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.json")
	touch(t, file)

	if err := CheckDir(dir); err != nil {
		t.Errorf("CheckDir(dir) = %v, want nil", err)
	}
	for _, p := range []string{"", "   ", file, filepath.Join(dir, "missing")} {
		err := CheckDir(p)
		if !errors.Is(err, ErrDirNotFound) {
			t.Errorf("CheckDir(%q) = %v, want ErrDirNotFound", p, err)
		}
		var de *DirError
		if !errors.As(err, &de) {
			t.Errorf("CheckDir(%q) should return *DirError", p)
		}
	}
}

func TestDiscover_InvalidUTF8NameIsAnError(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("filesystem does not store arbitrary byte names")
	}
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "good.json"))
	touch(t, filepath.Join(dir, "bad\xff.json"))

	m, err := Discover(dir, Options{})
	if !errors.Is(err, ErrInvalidName) {
		t.Fatalf("Discover() error = %v, want ErrInvalidName", err)
	}
	if m != nil {
		t.Errorf("expected no manifest, got %+v", m)
	}
}

func TestDiscover_UnreadableDirReturnsError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.json"))
	if err := os.Chmod(dir, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	m, err := Discover(dir, Options{})
	if err == nil {
		t.Fatalf("expected listing error, got %+v", m)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("expected os.ErrPermission, got %v", err)
	}
}
