// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stratacfg/strata/pkg/cfgerr"
	"github.com/stratacfg/strata/pkg/schema"
)

func TestFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		operation  string
		issue      Id
		suggestion string
	}{
		{
			name:       "unknown argument",
			err:        &cfgerr.UnknownArgumentError{Arg: "--colour"},
			operation:  "parse arguments",
			issue:      UnknownArgumentId,
			suggestion: "-- --colour",
		},
		{
			name:       "missing argument",
			err:        &cfgerr.MissingArgumentError{Flag: "count"},
			operation:  "parse arguments",
			issue:      MissingArgumentId,
			suggestion: "--count",
		},
		{
			name:       "bad utf-8",
			err:        &cfgerr.BadUTF8Error{Flag: "name"},
			operation:  "parse arguments",
			issue:      InvalidFlagValueId,
			suggestion: "--name",
		},
		{
			name:       "field parse",
			err:        &cfgerr.FieldParseError{Flag: "count", Field: "count", Value: "x", Err: errors.New("invalid syntax")},
			operation:  "parse arguments",
			issue:      InvalidFlagValueId,
			suggestion: "--count",
		},
		{
			name:       "missing field",
			err:        &cfgerr.MissingFieldError{Name: "api_key"},
			operation:  "resolve configuration",
			issue:      MissingFieldId,
			suggestion: "--api-key <value>",
		},
		{
			name:       "default value",
			err:        &cfgerr.DefaultValueError{Name: "cache_dir", Err: errors.New("unset")},
			operation:  "resolve configuration",
			issue:      DefaultValueFailedId,
			suggestion: "'cache_dir'",
		},
		{
			name:       "source read",
			err:        &cfgerr.SourceReadError{Source: "/etc/app.toml", Err: errors.New("is a directory")},
			operation:  "load configuration",
			issue:      SourceReadFailedId,
			suggestion: "readable file",
		},
		{
			name:       "source parse with key",
			err:        &cfgerr.SourceParseError{Source: "app.toml", Key: "port", Err: cfgerr.ErrTypeMismatch},
			operation:  "load configuration",
			issue:      SourceParseFailedId,
			suggestion: "'port' in app.toml",
		},
		{
			name:      "source parse without key",
			err:       &cfgerr.SourceParseError{Source: "app.toml", Err: errors.New("unexpected EOF")},
			operation: "load configuration",
			issue:     SourceParseFailedId,
		},
		{
			name:       "invalid schema",
			err:        &schema.InvalidSchemaError{FieldErrors: []error{&schema.DuplicateNameError{Name: "port"}}},
			operation:  "load schema",
			issue:      SchemaInvalidId,
			suggestion: "strata schema check",
		},
		{
			name:       "wrapped validation error",
			err:        fmt.Errorf("resolve: %w", &cfgerr.MissingFieldError{Name: "user"}),
			operation:  "resolve configuration",
			issue:      MissingFieldId,
			suggestion: "--user <value>",
		},
		{
			name:      "unclassified",
			err:       errors.New("boom"),
			operation: "resolve configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FromError(tt.err)
			if got == nil {
				t.Fatal("FromError() returned nil")
			}
			if got.Operation != tt.operation {
				t.Errorf("Operation = %q, want %q", got.Operation, tt.operation)
			}
			if got.Issue != tt.issue {
				t.Errorf("Issue = %d, want %d", got.Issue, tt.issue)
			}
			if !errors.Is(got, tt.err) {
				t.Error("FromError() should wrap the original error")
			}
			if tt.suggestion == "" {
				return
			}
			if !strings.Contains(strings.Join(got.Suggestions, "\n"), tt.suggestion) {
				t.Errorf("Suggestions %q should mention %q", got.Suggestions, tt.suggestion)
			}
		})
	}
}

func TestFromError_Passthrough(t *testing.T) {
	t.Parallel()

	if FromError(nil) != nil {
		t.Error("FromError(nil) should return nil")
	}

	ae := NewActionableError("load schema")
	wrapped := fmt.Errorf("outer: %w", ae)
	if got := FromError(wrapped); got != ae {
		t.Errorf("FromError() = %v, want the existing ActionableError", got)
	}
}
