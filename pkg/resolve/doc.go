// SPDX-License-Identifier: MPL-2.0

// Package resolve produces a validated configuration from a schema, an
// ordered list of sources and a command-line token list.
//
// Sources are listed in descending priority and folded first-wins: a value
// from an earlier source is never replaced by a later one. A source that does
// not exist contributes nothing; any other source failure aborts resolution.
// Command-line values are then applied on top and always win. Finally the
// merged layer is validated: mandatory parameters must be set, optional ones
// may stay absent, default-value parameters evaluate their default lazily,
// and unset switches take their kind's default.
//
//	r := resolve.New(s, resolve.WithFiles("./app.toml", "/etc/app.toml"))
//	res, err := r.Resolve(ctx, os.Args)
//	if err != nil {
//		return err
//	}
//	port := res.Config.Int("port")
package resolve
