// SPDX-License-Identifier: MPL-2.0

// Package config handles the settings of the strata binary itself using Viper
// with CUE as the file format.
//
// Settings are loaded from ~/.config/strata/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/strata/config.cue on macOS, %APPDATA%\strata\config.cue
// on Windows), falling back to ./strata.cue. STRATA_<SECTION>_<KEY> environment
// variables override file values.
//
// Files are validated against an embedded CUE schema (config_schema.cue);
// environment overrides are validated by Config.IsValid.
package config
