// Package oplog keeps a persistent log of manifest operations.
// Entries are stored in JSONL format (one JSON object per line).
package oplog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"lessonlist/internal/config"
)

const OpsFile = "operations.log"

// Entry represents one log line in JSONL format.
type Entry struct {
	Timestamp string         `json:"ts"`
	Command   string         `json:"cmd"`
	Args      map[string]any `json:"args,omitempty"`
	Status    string         `json:"status"`
	Message   string         `json:"msg,omitempty"`
	Duration  int64          `json:"ms,omitempty"`
}

// LogDir returns $XDG_STATE_HOME/lessonlist/logs.
func LogDir() string {
	return filepath.Join(config.StateDir(), "logs")
}

// Write appends a single JSONL entry to the log file in dir.
func Write(dir string, e Entry) error {
	info, err := os.Stat(dir)
	if err == nil && !info.IsDir() {
		return &os.PathError{Op: "mkdir", Path: dir, Err: os.ErrInvalid}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, OpsFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(e)
}

// WriteWithLimit appends an entry and truncates the file if it exceeds maxEntries.
// maxEntries <= 0 means unlimited (same as Write).
func WriteWithLimit(dir string, e Entry, maxEntries int) error {
	if err := Write(dir, e); err != nil {
		return err
	}

	if maxEntries <= 0 {
		return nil
	}

	// Hysteresis: only truncate when 20% over limit to avoid frequent rewrites
	threshold := maxEntries + maxEntries/5
	path := filepath.Join(dir, OpsFile)
	entries, err := readAllEntries(path)
	if err != nil || len(entries) <= threshold {
		return nil
	}

	keep := entries[len(entries)-maxEntries:]
	return rewriteEntries(path, keep)
}

// readAllEntries reads all entries from the log file in file order (oldest first).
func readAllEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var all []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue // skip malformed lines
		}
		all = append(all, e)
	}
	return all, scanner.Err()
}

// rewriteEntries atomically replaces the log file with the given entries.
func rewriteEntries(path string, entries []Entry) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

// Read returns the last `limit` entries from the log in dir (newest first).
// If limit <= 0, all entries are returned.
func Read(dir string, limit int) ([]Entry, error) {
	all, err := readAllEntries(filepath.Join(dir, OpsFile))
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// NewEntry creates an Entry with the current timestamp.
func NewEntry(cmd, status string, duration time.Duration) Entry {
	return Entry{
		Timestamp: time.Now().Format(time.RFC3339),
		Command:   cmd,
		Status:    status,
		Duration:  duration.Milliseconds(),
	}
}
