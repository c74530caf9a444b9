package lesson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Entry is one lesson in the manifest. Mapping and Audio are empty when the
// companion file or folder does not exist.
type Entry struct {
	Name    string `json:"name"`
	Mapping string `json:"mapping"`
	Audio   string `json:"audio"`
}

// Manifest is the content of json_list.json.
type Manifest struct {
	Lessons []Entry `json:"lessons"`
}

// Marshal encodes m with 4-space indentation. Non-ASCII and HTML characters
// are written as-is and there is no trailing newline.
func Marshal(m *Manifest) ([]byte, error) {
	out := *m
	if out.Lessons == nil {
		out.Lessons = []Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators undoes encoding/json's unconditional \u2028 and
// \u2029 escapes so every non-ASCII character is written literally.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if rest := data[i:]; bytes.HasPrefix(rest, []byte(`\u2028`)) || bytes.HasPrefix(rest, []byte(`\u2029`)) {
			if rest[5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		// keep other escapes intact, including an escaped backslash
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// ManifestPath returns where Write puts the manifest for outDir.
func ManifestPath(outDir string, opts Options) string {
	return filepath.Join(outDir, opts.withDefaults().ManifestName)
}

// Write replaces the manifest in outDir and returns its path. The file is
// written to a temp file first so a failed write never leaves a partial
// manifest behind.
func Write(outDir string, m *Manifest, opts Options) (string, error) {
	data, err := Marshal(m)
	if err != nil {
		return "", err
	}

	path := ManifestPath(outDir, opts)
	tmp, err := os.CreateTemp(outDir, ".json_list-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return "", fmt.Errorf("chmod manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close manifest: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("replace manifest: %w", err)
	}
	return path, nil
}

// Read parses the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if m.Lessons == nil {
		m.Lessons = []Entry{}
	}
	return &m, nil
}
