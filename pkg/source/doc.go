// SPDX-License-Identifier: MPL-2.0

// Package source loads partial configuration layers from outside the
// process: configuration files in TOML, YAML, CUE or HCL, environment
// variables, and static in-memory maps.
//
// Every file holds one flat table of "name = value" pairs whose keys are
// schema names. Unknown keys, nested tables and values of the wrong type are
// reported as *cfgerr.SourceParseError. A file that does not exist yields a
// *cfgerr.SourceReadError that matches fs.ErrNotExist, which callers treat as
// an empty layer.
package source
