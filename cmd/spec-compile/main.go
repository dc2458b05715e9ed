// spec-compile - Deterministic Spec Compiler
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/spec-compile

package main

import (
	"os"

	"github.com/ariel-frischer/spec-compile/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
