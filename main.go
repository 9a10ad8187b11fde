// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/stratacfg/strata/cmd/strata"

func main() {
	cmd.Execute()
}
