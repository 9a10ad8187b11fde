// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stratacfg/strata/internal/issue"
	"github.com/stratacfg/strata/internal/testutil"
)

// isolatedOptions points the loader at empty temp directories so neither the
// user's settings nor a strata.cue in the package directory leak into tests.
func isolatedOptions(t *testing.T) LoadOptions {
	t.Helper()
	return LoadOptions{
		ConfigDirPath: filepath.Join(t.TempDir(), AppName),
		WorkDir:       t.TempDir(),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	testutil.MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	want := &Config{
		UI:      UIConfig{ColorScheme: ColorSchemeAuto},
		Output:  OutputConfig{Format: OutputText},
		Log:     LogConfig{Level: LogLevelWarn},
		Resolve: ResolveConfig{},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux-specific")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Parallel()

	got, err := DefaultConfigPath("/etc/strata")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/etc/strata", "config.cue"); got != want {
		t.Errorf("DefaultConfigPath() = %s, want %s", got, want)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	cfg, path, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAndSave(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	cfg := &Config{
		UI:      UIConfig{ColorScheme: ColorSchemeDark, Verbose: true},
		Output:  OutputConfig{Format: OutputYAML},
		Log:     LogConfig{Level: LogLevelDebug},
		Resolve: ResolveConfig{Parallel: true, EnvPrefix: "MYAPP"},
	}

	cfgPath, err := DefaultConfigPath(opts.ConfigDirPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(cfgPath, cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, path, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != cfgPath {
		t.Errorf("resolved path = %q, want %q", path, cfgPath)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("loaded config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	writeFile(t, filepath.Join(opts.ConfigDirPath, "config.cue"), "output: format: \"json\"\n")

	cfg, _, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	want := DefaultConfig()
	want.Output.Format = OutputJSON
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_LocalFallback(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	local := filepath.Join(opts.WorkDir, LocalConfigFileName)
	writeFile(t, local, "log: level: \"info\"\n")

	cfg, path, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != local {
		t.Errorf("resolved path = %q, want %q", path, local)
	}
	if cfg.Log.Level != LogLevelInfo {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}

	// The config directory wins over the working directory.
	dirFile := filepath.Join(opts.ConfigDirPath, "config.cue")
	writeFile(t, dirFile, "log: level: \"error\"\n")
	cfg, path, err = loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if path != dirFile || cfg.Log.Level != LogLevelError {
		t.Errorf("got %q from %q, want error from %q", cfg.Log.Level, path, dirFile)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	opts := isolatedOptions(t)
	writeFile(t, filepath.Join(opts.ConfigDirPath, "config.cue"), "output: format: \"json\"\nui: verbose: false\n")
	t.Setenv("STRATA_OUTPUT_FORMAT", "toml")
	t.Setenv("STRATA_UI_VERBOSE", "true")
	t.Setenv("STRATA_RESOLVE_ENV_PREFIX", "APP")

	cfg, _, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if cfg.Output.Format != OutputTOML || !cfg.UI.Verbose || cfg.Resolve.EnvPrefix != "APP" {
		t.Errorf("environment overrides not applied: %+v", cfg)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	t.Setenv("STRATA_LOG_LEVEL", "chatty")

	_, _, err := loadWithOptions(context.Background(), isolatedOptions(t))
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("expected ErrInvalidLogLevel, got %v", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue != issue.ConfigLoadFailedId {
		t.Errorf("expected an ActionableError linked to ConfigLoadFailedId, got %v", err)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", "ui: {\n"},
		{"wrong type", "ui: verbose: \"yes\"\n"},
		{"unknown value", "output: format: \"xml\"\n"},
		{"unknown field", "colour: \"dark\"\n"},
		{"bad prefix", "resolve: env_prefix: \"lower\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := isolatedOptions(t)
			cfgPath := filepath.Join(opts.ConfigDirPath, "config.cue")
			writeFile(t, cfgPath, tt.content)

			_, _, err := loadWithOptions(context.Background(), opts)
			if err == nil {
				t.Fatal("expected an error for an invalid settings file")
			}
			errStr := err.Error()
			if !strings.Contains(errStr, "load settings") {
				t.Errorf("error should contain operation, got: %s", errStr)
			}
			if !strings.Contains(errStr, cfgPath) {
				t.Errorf("error should contain resource path, got: %s", errStr)
			}
		})
	}
}

func TestLoad_CustomPath(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	// A file in the config directory must be ignored when a custom path is given.
	writeFile(t, filepath.Join(opts.ConfigDirPath, "config.cue"), "log: level: \"error\"\n")
	custom := filepath.Join(t.TempDir(), "custom.cue")
	writeFile(t, custom, "log: level: \"debug\"\n")
	opts.ConfigFilePath = custom

	cfg, path, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != custom || cfg.Log.Level != LogLevelDebug {
		t.Errorf("got %q from %q, want debug from %q", cfg.Log.Level, path, custom)
	}
}

func TestLoad_CustomPath_NotFound(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	opts.ConfigFilePath = filepath.Join(t.TempDir(), "missing.cue")

	_, _, err := loadWithOptions(context.Background(), opts)
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ActionableError, got %v", err)
	}
	if ae.Resource != opts.ConfigFilePath {
		t.Errorf("Resource = %q, want %q", ae.Resource, opts.ConfigFilePath)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions")
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := loadWithOptions(ctx, isolatedOptions(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), AppName)

	path, created, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if !created || path != filepath.Join(dir, "config.cue") {
		t.Errorf("CreateDefaultConfig() = %q, %v", path, created)
	}

	// The generated file must load back to the defaults.
	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir, WorkDir: t.TempDir()})
	if err != nil {
		t.Fatalf("generated settings file does not load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	// An existing file is left alone.
	writeFile(t, path, "log: level: \"info\"\n")
	if _, created, err := CreateDefaultConfig(dir); err != nil || created {
		t.Errorf("second CreateDefaultConfig() = %v, %v; want not created", created, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "info") {
		t.Error("existing settings file was overwritten")
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	out := GenerateCUE(cfg)
	for _, want := range []string{`color_scheme: "auto"`, `format: "text"`, `level: "warn"`, "parallel: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "env_prefix") {
		t.Error("empty env_prefix should be omitted")
	}

	cfg.Resolve.EnvPrefix = "APP"
	if out := GenerateCUE(cfg); !strings.Contains(out, `env_prefix: "APP"`) {
		t.Errorf("GenerateCUE() missing env_prefix:\n%s", out)
	}
}

func TestProvider(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	cfgPath := filepath.Join(opts.ConfigDirPath, "config.cue")
	writeFile(t, cfgPath, "ui: color_scheme: \"light\"\n")

	p := NewProvider()
	cfg, err := p.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.ColorScheme != ColorSchemeLight {
		t.Errorf("ColorScheme = %q, want light", cfg.UI.ColorScheme)
	}

	path, err := p.Path(context.Background(), opts)
	if err != nil || path != cfgPath {
		t.Errorf("Path() = %q, %v; want %q", path, err, cfgPath)
	}
}
