// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/stratacfg/strata/pkg/cfgerr"
)

// Process exit codes.
const (
	ExitOK = 0
	// ExitFailure covers schema, settings and usage errors.
	ExitFailure = 1
	// ExitArgument reports a malformed command line.
	ExitArgument = 2
	// ExitMissingField reports a mandatory field left unset or a failed default.
	ExitMissingField = 3
	// ExitSource reports an unreadable or invalid configuration source.
	ExitSource = 4
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
// A nil Err means the command already reported the failure.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps err to the process exit code.
func exitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case cfgerr.IsArgument(err):
		return ExitArgument
	case cfgerr.IsValidation(err):
		return ExitMissingField
	case cfgerr.IsSource(err):
		return ExitSource
	default:
		return ExitFailure
	}
}
