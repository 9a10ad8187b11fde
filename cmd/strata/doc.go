// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands of strata.
//
// The command tree is built around an App that carries the loaded settings,
// the logger and the output writers, so every command can be exercised in
// tests without touching the process state.
package cmd
