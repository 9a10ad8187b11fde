// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"

	"github.com/stratacfg/strata/pkg/cfgerr"
	"github.com/stratacfg/strata/pkg/schema"
)

// FromError wraps err in an ActionableError describing the failed step with
// suggestions and a guide. An err that already is an ActionableError is
// returned unchanged. FromError returns nil for a nil err.
func FromError(err error) *ActionableError {
	if err == nil {
		return nil
	}
	var ae *ActionableError
	if errors.As(err, &ae) {
		return ae
	}

	ctx := NewErrorContext().Wrap(err)

	var (
		unknownArg *cfgerr.UnknownArgumentError
		missingArg *cfgerr.MissingArgumentError
		badUTF8    *cfgerr.BadUTF8Error
		fieldParse *cfgerr.FieldParseError
		missing    *cfgerr.MissingFieldError
		defErr     *cfgerr.DefaultValueError
		readErr    *cfgerr.SourceReadError
		parseErr   *cfgerr.SourceParseError
	)
	switch {
	case errors.As(err, &unknownArg):
		ctx.WithOperation("parse arguments").
			WithIssue(UnknownArgumentId).
			WithSuggestions(
				"Check the flag spelling; underscores in parameter names become hyphens, switch names are used as declared",
				fmt.Sprintf("Use '-- %s' to pass it through as a positional argument", unknownArg.Arg),
			)
	case errors.As(err, &missingArg):
		ctx.WithOperation("parse arguments").
			WithIssue(MissingArgumentId).
			WithSuggestion(fmt.Sprintf("Give a value after --%s", missingArg.Flag))
	case errors.As(err, &badUTF8):
		ctx.WithOperation("parse arguments").
			WithIssue(InvalidFlagValueId).
			WithSuggestion(fmt.Sprintf("Pass valid UTF-8 text to --%s", badUTF8.Flag))
	case errors.As(err, &fieldParse):
		ctx.WithOperation("parse arguments").
			WithIssue(InvalidFlagValueId).
			WithSuggestion(fmt.Sprintf("Check the value given to --%s", fieldParse.Flag))
	case errors.As(err, &missing):
		ctx.WithOperation("resolve configuration").
			WithIssue(MissingFieldId).
			WithSuggestions(
				fmt.Sprintf("Pass --%s <value> on the command line", schema.FlagName(missing.Name)),
				fmt.Sprintf("Or set '%s' in a configuration file", missing.Name),
			)
	case errors.As(err, &defErr):
		ctx.WithOperation("resolve configuration").
			WithIssue(DefaultValueFailedId).
			WithSuggestion(fmt.Sprintf("Set '%s' explicitly to skip its default", defErr.Name))
	case errors.As(err, &readErr):
		ctx.WithOperation("load configuration").
			WithIssue(SourceReadFailedId).
			WithSuggestion("Check that the path is a readable file")
	case errors.As(err, &parseErr):
		ctx.WithOperation("load configuration").
			WithIssue(SourceParseFailedId)
		if parseErr.Key != "" {
			ctx.WithSuggestion(fmt.Sprintf("Fix or remove '%s' in %s", parseErr.Key, parseErr.Source))
		}
	case errors.Is(err, schema.ErrInvalidSchema):
		ctx.WithOperation("load schema").
			WithIssue(SchemaInvalidId).
			WithSuggestion("Run 'strata schema check <file>' for the full list of problems")
	default:
		ctx.WithOperation("resolve configuration")
	}
	return ctx.Build()
}
