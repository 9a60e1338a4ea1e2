// SPDX-License-Identifier: MIT

// Command saltmag evaluates a SALT2-style SED model from the command line.
package main

import "github.com/katalvlaran/saltmag/internal/logging"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Log.Fatal(err)
	}
}
