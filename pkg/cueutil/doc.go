// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// It consolidates the CUE parsing pattern used by schema files, CUE
// configuration sources and the strata tool settings:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to a Go value
//
// # Usage
//
//	//go:embed schema_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[fileSchema](
//	    schemaBytes,
//	    userFileBytes,
//	    "#Schema",
//	    cueutil.WithFilename("app.schema.cue"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes CUE path for debugging
//	}
//	return result.Value, nil
//
// Sources that have no schema of their own use DecodeConcrete, which skips
// the unification step.
package cueutil
