// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// OutputText prints one "name = value" line per field.
	OutputText OutputFormat = "text"
	// OutputTOML prints the resolved configuration as a TOML document.
	OutputTOML OutputFormat = "toml"
	// OutputYAML prints the resolved configuration as a YAML document.
	OutputYAML OutputFormat = "yaml"
	// OutputJSON prints the resolved configuration as a JSON object.
	OutputJSON OutputFormat = "json"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidEnvPrefix is returned when an EnvPrefix is not an upper-case identifier.
	ErrInvalidEnvPrefix = errors.New("invalid environment prefix")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	envPrefixPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputFormat selects how resolved configurations are printed.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// LogLevel is the minimum level of diagnostic messages written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// EnvPrefix is the prefix of the environment variables read as a
	// configuration source. The zero value disables the environment source.
	EnvPrefix string

	// InvalidEnvPrefixError is returned when a non-empty EnvPrefix is not an
	// upper-case identifier.
	InvalidEnvPrefixError struct {
		Value EnvPrefix
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the strata settings.
	Config struct {
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Output configures how resolved configurations are printed
		Output OutputConfig `json:"output" mapstructure:"output"`
		// Log configures diagnostic logging
		Log LogConfig `json:"log" mapstructure:"log"`
		// Resolve holds defaults for 'strata resolve'
		Resolve ResolveConfig `json:"resolve" mapstructure:"resolve"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging regardless of Log.Level
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	OutputConfig struct {
		Format OutputFormat `json:"format" mapstructure:"format"`
	}

	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// ResolveConfig holds defaults applied when the matching flag is not given.
	ResolveConfig struct {
		// Parallel loads configuration files concurrently
		Parallel bool `json:"parallel" mapstructure:"parallel"`
		// EnvPrefix adds an environment source with this prefix (lowest priority)
		EnvPrefix EnvPrefix `json:"env_prefix" mapstructure:"env_prefix"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// GlamourStyle returns the glamour style name matching the scheme.
func (cs ColorScheme) GlamourStyle() string {
	switch cs {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, toml, yaml, json)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error {
	return ErrInvalidOutputFormat
}

func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is one of the defined formats.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case OutputText, OutputTOML, OutputYAML, OutputJSON:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error {
	return ErrInvalidLogLevel
}

func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts the setting to a charmbracelet/log level. Unknown values
// map to log.WarnLevel.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

func (e *InvalidEnvPrefixError) Error() string {
	return fmt.Sprintf("invalid environment prefix %q: must match [A-Z][A-Z0-9_]*", e.Value)
}

// Unwrap returns ErrInvalidEnvPrefix for errors.Is() compatibility.
func (e *InvalidEnvPrefixError) Unwrap() error { return ErrInvalidEnvPrefix }

func (p EnvPrefix) String() string { return string(p) }

// IsValid returns whether the EnvPrefix is valid.
// The zero value ("") is valid and means "no environment source".
func (p EnvPrefix) IsValid() (bool, []error) {
	if p == "" || envPrefixPattern.MatchString(string(p)) {
		return true, nil
	}
	return false, []error{&InvalidEnvPrefixError{Value: p}}
}

// IsValid returns whether the Config has valid fields, collecting the
// errors of every sub-setting.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Output.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Resolve.EnvPrefix.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and every field error for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Output: OutputConfig{
			Format: OutputText,
		},
		Log: LogConfig{
			Level: LogLevelWarn,
		},
		Resolve: ResolveConfig{
			Parallel:  false,
			EnvPrefix: "",
		},
	}
}
