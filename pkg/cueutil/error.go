// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

var (
	// ErrInvalidDocument is the sentinel wrapped by every *DocumentError.
	ErrInvalidDocument = errors.New("invalid CUE document")

	// ErrFileTooLarge is the sentinel wrapped by *FileTooLargeError.
	ErrFileTooLarge = errors.New("file too large")
)

type (
	// Problem is one located failure inside a CUE document.
	Problem struct {
		// Path is the JSON-style path of the offending value
		// ("params[0].type"), or "" for document-level failures.
		Path    string
		Message string
	}

	// DocumentError reports a CUE document that failed to compile, unify
	// with its schema or decode.
	DocumentError struct {
		File     string
		Problems []Problem
		cause    error
	}

	// FileTooLargeError is returned before parsing a file above the size limit.
	FileTooLargeError struct {
		File  string
		Size  int64
		Limit int64
	}
)

// Error renders a single problem on one line and several as an indented list.
func (e *DocumentError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.File, e.Problems[0])
	}
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("%s: %d problems:\n  %s", e.File, len(e.Problems), strings.Join(lines, "\n  "))
}

// Unwrap returns ErrInvalidDocument and the original CUE error.
func (e *DocumentError) Unwrap() []error {
	return []error{ErrInvalidDocument, e.cause}
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.File, e.Size, e.Limit)
}

// Unwrap returns ErrFileTooLarge for errors.Is() compatibility.
func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// FormatError converts err into a *DocumentError for file, with one Problem
// per CUE error it carries. A nil err yields nil.
//
// Examples of rendered problems:
//   - app.schema.cue: params[2].type: 3 errors in empty disjunction
//   - config.cue: ui.verbose: conflicting values "yes" and bool
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return &DocumentError{File: file, Problems: []Problem{{Message: err.Error()}}, cause: err}
	}

	problems := make([]Problem, 0, len(list))
	for _, e := range list {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		// CUE sometimes repeats the path at the start of the message.
		if path != "" {
			if rest, ok := strings.CutPrefix(msg, path); ok {
				msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			}
		}
		problems = append(problems, Problem{Path: path, Message: msg})
	}
	return &DocumentError{File: file, Problems: problems, cause: err}
}

// formatPath joins a CUE error path ("params", "0", "type") into JSON-path
// notation ("params[0].type"). Numeric elements after the first are indices.
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		if _, err := strconv.ParseUint(part, 10, 64); err == nil && i > 0 {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

// CheckFileSize returns a *FileTooLargeError when data exceeds maxSize.
// Configuration sources of every format share this limit.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if size := int64(len(data)); size > maxSize {
		return &FileTooLargeError{File: filename, Size: size, Limit: maxSize}
	}
	return nil
}
