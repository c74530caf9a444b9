package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBaseDir_RespectsXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	got := BaseDir()
	want := filepath.Join("/custom/config", "lessonlist")
	if got != want {
		t.Errorf("BaseDir() = %q, want %q", got, want)
	}
}

func TestStateDir_DefaultFallback(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	home, _ := os.UserHomeDir()

	got := StateDir()
	want := filepath.Join(home, ".local", "state", "lessonlist")
	if got != want {
		t.Errorf("StateDir() = %q, want %q", got, want)
	}
}

func TestStateDir_RespectsXDGStateHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")

	got := StateDir()
	want := filepath.Join("/custom/state", "lessonlist")
	if got != want {
		t.Errorf("StateDir() = %q, want %q", got, want)
	}
}

func TestConfigPath_Precedence(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv(EnvConfigPath, "")

	if got, want := ConfigPath(""), filepath.Join("/xdg", "lessonlist", "config.yaml"); got != want {
		t.Errorf("default ConfigPath = %q, want %q", got, want)
	}

	t.Setenv(EnvConfigPath, "/env/config.toml")
	if got := ConfigPath(""); got != "/env/config.toml" {
		t.Errorf("env ConfigPath = %q", got)
	}
	if got := ConfigPath("/flag/config.yaml"); got != "/flag/config.yaml" {
		t.Errorf("explicit ConfigPath = %q", got)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if cfg.LogMaxEntries() != DefaultMaxLogEntries {
		t.Errorf("LogMaxEntries() = %d, want %d", cfg.LogMaxEntries(), DefaultMaxLogEntries)
	}
	opts := cfg.LessonOptions()
	if opts.Ext != "" || opts.MappingPrefix != "" {
		t.Errorf("expected zero options, got %+v", opts)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "mapping_prefix: map_\naudio_prefix: snd_\nmax_log_entries: 10\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MappingPrefix != "map_" || cfg.AudioPrefix != "snd_" {
		t.Errorf("unexpected prefixes: %+v", cfg)
	}
	if cfg.LogMaxEntries() != 10 {
		t.Errorf("LogMaxEntries() = %d, want 10", cfg.LogMaxEntries())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "lesson_ext = \".yaml\"\nmanifest_name = \"index.yaml\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	opts := cfg.LessonOptions()
	if opts.Ext != ".yaml" || opts.ManifestName != "index.yaml" {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"negative.yaml":  "max_log_entries: -1\n",
		"separator.yaml": "mapping_prefix: sub/map_\n",
		"syntax.yaml":    "mapping_prefix: [unterminated\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%s) expected error", name)
		}
	}
}

func TestSave_Roundtrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			cfg.LastLessonsDir = "/data/lessons"
			cfg.LastOutputDir = "/data/out"
			if err := cfg.Save(); err != nil {
				t.Fatal(err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if loaded.LastLessonsDir != "/data/lessons" || loaded.LastOutputDir != "/data/out" {
				t.Errorf("roundtrip mismatch: %+v", loaded)
			}
			if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
				t.Error("temp file should be removed")
			}
		})
	}
}

func TestSave_YAMLOmitsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, _ := Load(path)
	cfg.AudioPrefix = "snd_"
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "audio_prefix: snd_" {
		t.Errorf("unexpected YAML:\n%s", data)
	}
}
