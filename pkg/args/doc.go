// SPDX-License-Identifier: MPL-2.0

// Package args turns a command-line token list into a layer of explicit
// settings plus the unconsumed remainder.
//
// The first token is the program name. Scanning then proceeds token by token:
//
//	--                 stop; the remainder is everything after it
//	--<param> <value>  parse value with the parameter's type
//	--<switch>         set a normal switch to true
//	--no-<switch>      set an inverted switch to false
//	--<other>          UnknownArgumentError
//	anything else      stop; the remainder starts at this token
//
// Parameter flags are the schema names with underscores replaced by hyphens;
// switch flags use the declared name unchanged. Both are matched exactly. The token list is always passed in explicitly; the
// package never reads os.Args.
package args
