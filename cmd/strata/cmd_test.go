// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/stratacfg/strata/internal/issue"
	"github.com/stratacfg/strata/internal/testutil"
	"github.com/stratacfg/strata/pkg/cfgerr"
)

const testSchema = `
params: [
	{name: "name", type: "string", doc: "service name"},
	{name: "port", type: "int", default: "8080"},
	{name: "timeout", type: "duration", default: "30s"},
	{name: "token", type: "string", optional: true, argument: false},
]
switches: [
	{name: "debug"},
	{name: "color", kind: "inverted"},
]
`

type cliEnv struct {
	workDir   string
	configDir string
	schema    string
}

// newCLIEnv prepares an isolated working directory holding app.schema.cue
// and an empty settings directory.
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	env := &cliEnv{
		workDir:   t.TempDir(),
		configDir: filepath.Join(t.TempDir(), "strata"),
	}
	env.schema = testutil.WriteFile(t, env.workDir, "app.schema.cue", testSchema)
	return env
}

// run executes the CLI and returns stdout, stderr and the command error.
func (e *cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Stdout:    &stdout,
		Stderr:    &stderr,
		ConfigDir: e.configDir,
		WorkDir:   e.workDir,
	})
	root := NewRootCommand(app)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func decodeJSON(t *testing.T, out string) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	return got
}

func TestResolve_JSON(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	local := testutil.WriteFile(t, env.workDir, "local.toml", "name = \"svc\"\nport = 9000\n")
	base := testutil.WriteFile(t, env.workDir, "base.yaml", "name: base\ntimeout: 1m\ncolor: false\n")

	out, _, err := env.run(t, "resolve", "--schema", env.schema,
		"-c", local, "-c", base, "--format", "json", "--explain",
		"--", "--port", "9100", "--debug", "--", "extra")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := map[string]any{
		"program": "app",
		"config": map[string]any{
			"name":    "svc",
			"port":    float64(9100),
			"timeout": "1m0s",
			"debug":   true,
			"color":   false,
		},
		"remainder": []any{"extra"},
		"origins": map[string]any{
			"name":    local,
			"port":    "args",
			"timeout": base,
			"debug":   "args",
			"color":   base,
		},
	}
	if diff := cmp.Diff(want, decodeJSON(t, out)); diff != "" {
		t.Errorf("resolve output mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_DefaultsAndProgram(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	out, _, err := env.run(t, "resolve", "--schema", env.schema, "--program", "svc", "--format", "json",
		"--", "--name", "api", "serve", "--port", "1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := decodeJSON(t, out)
	want := map[string]any{
		"program": "svc",
		"config": map[string]any{
			"name":    "api",
			"port":    float64(8080),
			"timeout": "30s",
			"debug":   false,
			"color":   true,
		},
		"remainder": []any{"serve", "--port", "1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolve output mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    map[string]string
		args     []string
		wantCode int
		wantErr  error
	}{
		{
			name:     "missing mandatory field",
			wantCode: ExitMissingField,
			wantErr:  cfgerr.ErrMissingField,
		},
		{
			name:     "unknown flag",
			args:     []string{"--name", "x", "--bogus"},
			wantCode: ExitArgument,
			wantErr:  cfgerr.ErrUnknownArgument,
		},
		{
			name:     "flag without value",
			args:     []string{"--name"},
			wantCode: ExitArgument,
			wantErr:  cfgerr.ErrMissingArgument,
		},
		{
			name:     "unparseable flag value",
			args:     []string{"--name", "x", "--port", "many"},
			wantCode: ExitArgument,
			wantErr:  cfgerr.ErrFieldParse,
		},
		{
			name:     "malformed file",
			files:    map[string]string{"bad.toml": "name = "},
			args:     []string{"--name", "x"},
			wantCode: ExitSource,
			wantErr:  cfgerr.ErrSourceParse,
		},
		{
			name:     "wrong type in file",
			files:    map[string]string{"bad.yaml": "port: nope\n"},
			args:     []string{"--name", "x"},
			wantCode: ExitSource,
			wantErr:  cfgerr.ErrSourceParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newCLIEnv(t)
			cmdArgs := []string{"resolve", "--schema", env.schema}
			for name, content := range tt.files {
				cmdArgs = append(cmdArgs, "-c", testutil.WriteFile(t, env.workDir, name, content))
			}
			cmdArgs = append(cmdArgs, "--")
			cmdArgs = append(cmdArgs, tt.args...)

			_, _, err := env.run(t, cmdArgs...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got := exitCode(err); got != tt.wantCode {
				t.Errorf("exitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestResolve_EnvPrefix(t *testing.T) {
	// Not parallel: uses t.Setenv.
	env := newCLIEnv(t)
	t.Setenv("APP_NAME", "from-env")
	t.Setenv("APP_PORT", "7000")
	file := testutil.WriteFile(t, env.workDir, "app.toml", "port = 9000\n")

	out, _, err := env.run(t, "resolve", "--schema", env.schema, "-c", file,
		"--env-prefix", "APP", "--format", "json", "--explain")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := decodeJSON(t, out)
	cfg := got["config"].(map[string]any)
	origins := got["origins"].(map[string]any)
	if cfg["name"] != "from-env" || origins["name"] != "env:APP" {
		t.Errorf("name = %v from %v, want from-env from env:APP", cfg["name"], origins["name"])
	}
	if cfg["port"] != float64(9000) || origins["port"] != file {
		t.Errorf("files must outrank the environment: port = %v from %v", cfg["port"], origins["port"])
	}
}

func TestResolve_InvalidEnvPrefixFlag(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	_, _, err := env.run(t, "resolve", "--schema", env.schema, "--env-prefix", "lower", "--", "--name", "x")
	if err == nil {
		t.Fatal("expected an error for a lower-case prefix")
	}
	if got := exitCode(err); got != ExitFailure {
		t.Errorf("exitCode() = %d, want %d", got, ExitFailure)
	}
}

func TestResolve_Parallel(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	first := testutil.WriteFile(t, env.workDir, "first.toml", "name = \"first\"\n")
	second := testutil.WriteFile(t, env.workDir, "second.toml", "name = \"second\"\nport = 1\n")

	out, _, err := env.run(t, "resolve", "--schema", env.schema, "--parallel",
		"-c", first, "-c", second, "-c", filepath.Join(env.workDir, "absent.toml"), "--format", "json")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	cfg := decodeJSON(t, out)["config"].(map[string]any)
	if cfg["name"] != "first" || cfg["port"] != float64(1) {
		t.Errorf("config = %v, want name from first file and port from second", cfg)
	}
}

func TestResolve_DefaultSchemaLookup(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	testutil.WriteFile(t, env.workDir, "strata.schema.toml", "[[params]]\nname = \"level\"\ntype = \"uint\"\ndefault = \"3\"\n")

	out, _, err := env.run(t, "resolve", "--format", "json")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	got := decodeJSON(t, out)
	if got["program"] != "strata" {
		t.Errorf("program = %v, want strata", got["program"])
	}
	if diff := cmp.Diff(map[string]any{"level": float64(3)}, got["config"]); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_SchemaErrors(t *testing.T) {
	t.Parallel()

	t.Run("no schema found", func(t *testing.T) {
		t.Parallel()
		env := &cliEnv{workDir: t.TempDir(), configDir: t.TempDir()}
		_, _, err := env.run(t, "resolve")
		var ae *issue.ActionableError
		if !errors.As(err, &ae) || ae.Issue != issue.SchemaNotFoundId {
			t.Fatalf("error = %v, want schema-not-found actionable error", err)
		}
	})

	t.Run("invalid schema", func(t *testing.T) {
		t.Parallel()
		env := newCLIEnv(t)
		bad := testutil.WriteFile(t, env.workDir, "bad.schema.toml", "[[params]]\nname = \"x\"\ntype = \"complex\"\n")
		_, _, err := env.run(t, "resolve", "--schema", bad)
		var ae *issue.ActionableError
		if !errors.As(err, &ae) || ae.Issue != issue.SchemaInvalidId {
			t.Fatalf("error = %v, want schema-invalid actionable error", err)
		}
	})
}

func TestResolve_TextOutput(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	out, _, err := env.run(t, "resolve", "--schema", env.schema, "--explain", "--", "--name", "svc", "rest")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, want := range []string{"app", "name", `"svc"`, "# args", "timeout", "30s", "# default", "rest"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "token") {
		t.Errorf("unset optional field must not be printed:\n%s", out)
	}
}

func TestResolve_FormatFromSettings(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	testutil.WriteFile(t, env.configDir, "config.cue", `output: format: "yaml"`+"\n")

	out, _, err := env.run(t, "resolve", "--schema", env.schema, "--", "--name", "svc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	var got map[string]any
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if cfg, ok := got["config"].(map[string]any); !ok || cfg["name"] != "svc" {
		t.Errorf("config = %v, want name svc", got["config"])
	}

	// --format still wins over the settings file.
	out, _, err = env.run(t, "resolve", "--schema", env.schema, "--format", "json", "--", "--name", "svc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	decodeJSON(t, out)
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	out, _, err := env.run(t, "tokenize", "--schema", env.schema, "--format", "toml", "--explain",
		"--", "--port", "1", "--no-color", "serve")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var got map[string]any
	if err := toml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not TOML: %v\n%s", err, out)
	}
	want := map[string]any{
		"program":   "app",
		"config":    map[string]any{"port": int64(1), "color": false},
		"remainder": []any{"serve"},
		"origins":   map[string]any{"port": "args", "color": "args"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokenize must not check mandatory fields or apply defaults (-want +got):\n%s", diff)
	}
}

func TestTokenize_RejectsUnknownFlag(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	_, _, err := env.run(t, "tokenize", "--schema", env.schema, "--", "--nope")
	var unknown *cfgerr.UnknownArgumentError
	if !errors.As(err, &unknown) || unknown.Arg != "--nope" {
		t.Fatalf("error = %v, want UnknownArgumentError for --nope", err)
	}
}

func TestInvalidFormat(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	_, _, err := env.run(t, "resolve", "--schema", env.schema, "--format", "xml", "--", "--name", "x")
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("error = %v, want invalid format error", err)
	}
}

func TestSchemaCheck(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	bad := testutil.WriteFile(t, env.workDir, "bad.schema.cue", `params: [{name: "1x", type: "int"}]`)

	out, _, err := env.run(t, "schema", "check", env.schema)
	if err != nil {
		t.Fatalf("check of a valid schema: %v", err)
	}
	if !strings.Contains(out, "✓") || !strings.Contains(out, "4 parameters, 2 switches") {
		t.Errorf("unexpected check output:\n%s", out)
	}

	out, _, err = env.run(t, "schema", "check", env.schema, bad)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitFailure || exitErr.Err != nil {
		t.Fatalf("error = %v, want silent ExitError", err)
	}
	if !strings.Contains(out, "✓") || !strings.Contains(out, "✗") {
		t.Errorf("every file must be reported:\n%s", out)
	}
}

func TestSchemaDoc_Raw(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	out, _, err := env.run(t, "schema", "doc", "--raw", "--program", "svc", env.schema)
	if err != nil {
		t.Fatalf("schema doc: %v", err)
	}
	for _, want := range []string{"# svc", "`--port <int>`", "`--no-color`", "service name", "_(file only)_"} {
		if !strings.Contains(out, want) {
			t.Errorf("reference missing %q:\n%s", want, out)
		}
	}
}

func TestSchemaDoc_Rendered(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	testutil.WriteFile(t, env.configDir, "config.cue", `ui: color_scheme: "dark"`+"\n")
	out, _, err := env.run(t, "schema", "doc", env.schema)
	if err != nil {
		t.Fatalf("schema doc: %v", err)
	}
	if !strings.Contains(out, "port") {
		t.Errorf("rendered reference missing the port flag:\n%s", out)
	}
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	settingsPath := filepath.Join(env.configDir, "config.cue")

	out, _, err := env.run(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(out, settingsPath) || !strings.Contains(out, "using defaults") {
		t.Errorf("config path output:\n%s", out)
	}

	out, _, err = env.run(t, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Created default settings") {
		t.Errorf("config init output:\n%s", out)
	}

	out, _, err = env.run(t, "config", "init")
	if err != nil {
		t.Fatalf("second config init: %v", err)
	}
	if !strings.Contains(out, "already exist") {
		t.Errorf("second config init must not overwrite:\n%s", out)
	}

	out, _, err = env.run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{settingsPath, "color_scheme", "auto", "format", "text", "env_prefix"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	out, _, err = env.run(t, "config", "dump")
	if err != nil {
		t.Fatalf("config dump: %v", err)
	}
	if !strings.Contains(out, `format: "text"`) {
		t.Errorf("config dump output:\n%s", out)
	}
}

func TestSettings_InvalidFileWarnsAndUsesDefaults(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	testutil.WriteFile(t, env.configDir, "config.cue", `output: format: "xml"`+"\n")

	out, stderr, err := env.run(t, "resolve", "--schema", env.schema, "--", "--name", "svc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(stderr, "Warning") {
		t.Errorf("expected a settings warning on stderr, got:\n%s", stderr)
	}
	if !strings.Contains(out, `"svc"`) {
		t.Errorf("expected text output with defaults, got:\n%s", out)
	}
}

func TestSettings_ExplicitConfigFlag(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	custom := testutil.WriteFile(t, env.workDir, "custom.cue", `output: format: "json"`+"\n")

	out, _, err := env.run(t, "--config", custom, "resolve", "--schema", env.schema, "--", "--name", "svc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	decodeJSON(t, out)
}
