package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"lessonlist/internal/lesson"
)

const (
	appName        = "lessonlist"
	configFileName = "config.yaml"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "LESSONLIST_CONFIG"

	DefaultMaxLogEntries = 500
)

// Config holds user settings. Every field is optional.
type Config struct {
	LessonExt     string `yaml:"lesson_ext,omitempty" toml:"lesson_ext,omitempty"`
	MappingPrefix string `yaml:"mapping_prefix,omitempty" toml:"mapping_prefix,omitempty"`
	AudioPrefix   string `yaml:"audio_prefix,omitempty" toml:"audio_prefix,omitempty"`
	ManifestName  string `yaml:"manifest_name,omitempty" toml:"manifest_name,omitempty"`

	LogLevel      string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`
	MaxLogEntries int    `yaml:"max_log_entries,omitempty" toml:"max_log_entries,omitempty"`

	// Remembered by the interactive form.
	LastLessonsDir string `yaml:"last_lessons_dir,omitempty" toml:"last_lessons_dir,omitempty"`
	LastOutputDir  string `yaml:"last_output_dir,omitempty" toml:"last_output_dir,omitempty"`

	path string
}

// BaseDir returns the config directory: $XDG_CONFIG_HOME/lessonlist,
// %AppData%\lessonlist on Windows, or ~/.config/lessonlist.
func BaseDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("AppData"); dir != "" {
			return filepath.Join(dir, appName)
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// StateDir returns $XDG_STATE_HOME/lessonlist or ~/.local/state/lessonlist.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appName)
}

// ConfigPath resolves the config file: explicit path, then
// LESSONLIST_CONFIG, then BaseDir()/config.yaml.
func ConfigPath(explicit string) string {
	if explicit != "" {
		return expandHome(explicit)
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return expandHome(env)
	}
	return filepath.Join(BaseDir(), configFileName)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads the config at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.MaxLogEntries < 0 {
		return nil, fmt.Errorf("max_log_entries must not be negative (got %d)", cfg.MaxLogEntries)
	}
	for _, name := range []string{cfg.MappingPrefix, cfg.AudioPrefix, cfg.ManifestName} {
		if strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("naming option %q must not contain a path separator", name)
		}
	}
	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string { return c.path }

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isTOML(c.path) {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LessonOptions returns the discovery naming conventions.
func (c *Config) LessonOptions() lesson.Options {
	return lesson.Options{
		Ext:           c.LessonExt,
		MappingPrefix: c.MappingPrefix,
		AudioPrefix:   c.AudioPrefix,
		ManifestName:  c.ManifestName,
	}
}

// LogMaxEntries returns the operation log size limit.
func (c *Config) LogMaxEntries() int {
	if c.MaxLogEntries == 0 {
		return DefaultMaxLogEntries
	}
	return c.MaxLogEntries
}
