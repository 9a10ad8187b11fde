// SPDX-License-Identifier: MPL-2.0

// Package schema describes the configuration surface of an application: an
// ordered list of value-taking parameters and boolean switches.
//
// A Schema is built once, either programmatically with New or from a schema
// file with Load (CUE or TOML), and is never mutated afterwards. Names share
// one namespace across parameters and switches, and every command-line flag
// spelling derived from them must be unique.
//
//	s, err := schema.New(
//		[]schema.ParamSpec{
//			{Name: "count", Type: schema.Int, Optionality: schema.Mandatory, Argument: true},
//			{Name: "cache_dir", Type: schema.String, Optionality: schema.DefaultValue,
//				Default: schema.Expr("${HOME}/.cache"), Argument: true},
//		},
//		[]schema.SwitchSpec{
//			{Name: "verbose"},
//			{Name: "color", Kind: schema.Inverted},
//		},
//	)
package schema
