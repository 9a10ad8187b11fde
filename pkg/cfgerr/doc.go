// SPDX-License-Identifier: MPL-2.0

// Package cfgerr defines the failure taxonomy shared by the schema, layer,
// tokenizer, source and resolver packages.
//
// Every failure is a distinct typed error that wraps a package-level sentinel,
// so callers can branch with errors.Is on the sentinel or errors.As on the
// concrete type to read its fields:
//
//	var missing *cfgerr.MissingFieldError
//	if errors.As(err, &missing) {
//		fmt.Println("please set", missing.Name)
//	}
//
// None of these errors are retried. The absence of a configuration file is
// not an error at all; the resolver treats it as an empty layer.
package cfgerr
