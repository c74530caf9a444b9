// Package lesson discovers lesson definition files in a directory and builds
// the json_list.json manifest that indexes them.
package lesson

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const (
	DefaultExt           = ".json"
	DefaultMappingPrefix = "mapping_"
	DefaultAudioPrefix   = "audio_"
	DefaultManifestName  = "json_list.json"
)

var (
	// ErrDirNotFound is matched by errors returned from CheckDir.
	ErrDirNotFound = errors.New("directory not found")

	// ErrInvalidName is returned by Discover for a lesson file whose name
	// cannot be represented in the manifest.
	ErrInvalidName = errors.New("file name is not valid UTF-8")
)

// DirError reports a lessons or output path that is not a usable directory.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	if e.Path == "" {
		return "no directory selected"
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

func (e *DirError) Is(target error) bool { return target == ErrDirNotFound }

// Options controls the naming conventions used during discovery.
// Zero fields fall back to the Default* constants.
type Options struct {
	Ext           string
	MappingPrefix string
	AudioPrefix   string
	ManifestName  string
}

func (o Options) withDefaults() Options {
	if o.Ext == "" {
		o.Ext = DefaultExt
	}
	if !strings.HasPrefix(o.Ext, ".") {
		o.Ext = "." + o.Ext
	}
	if o.MappingPrefix == "" {
		o.MappingPrefix = DefaultMappingPrefix
	}
	if o.AudioPrefix == "" {
		o.AudioPrefix = DefaultAudioPrefix
	}
	if o.ManifestName == "" {
		o.ManifestName = DefaultManifestName
	}
	return o
}

// CheckDir returns a *DirError (matching ErrDirNotFound) when path is empty,
// does not exist, or is not a directory.
func CheckDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return &DirError{Err: os.ErrNotExist}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &DirError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return &DirError{Path: path, Err: errors.New("not a directory")}
	}
	return nil
}

// Discover scans dir for lesson files and returns a fresh manifest.
// The caller is expected to have validated dir with CheckDir; listing
// failures are returned rather than skipped.
func Discover(dir string, opts Options) (*Manifest, error) {
	opts = opts.withDefaults()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons folder: %w", err)
	}

	ext := strings.ToLower(opts.Ext)
	manifestName := strings.ToLower(opts.ManifestName)
	mappingPrefix := strings.ToLower(opts.MappingPrefix)

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lname := strings.ToLower(e.Name())
		if !strings.HasSuffix(lname, ext) {
			continue
		}
		// json_list.json and mapping_*.json are generated artifacts
		if lname == manifestName || strings.HasPrefix(lname, mappingPrefix) {
			continue
		}
		if !utf8.ValidString(e.Name()) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, e.Name())
		}
		names = append(names, e.Name())
	}

	fold := cases.Fold()
	keys := make(map[string]string, len(names))
	for _, name := range names {
		keys[name] = fold.String(name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := keys[names[i]], keys[names[j]]
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})

	parent := parentDir(dir)
	m := &Manifest{Lessons: make([]Entry, 0, len(names))}
	for _, name := range names {
		base := strings.TrimSuffix(name, filepath.Ext(name))

		mapping := opts.MappingPrefix + base + opts.Ext
		if !isFile(filepath.Join(dir, mapping)) {
			mapping = ""
		}

		audio := opts.AudioPrefix + base
		if !isDir(filepath.Join(dir, audio)) && (parent == "" || !isDir(filepath.Join(parent, audio))) {
			audio = ""
		}

		m.Lessons = append(m.Lessons, Entry{Name: name, Mapping: mapping, Audio: audio})
	}
	return m, nil
}

// parentDir returns the directory containing dir, or "" when dir is a root.
func parentDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return ""
	}
	return parent
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
