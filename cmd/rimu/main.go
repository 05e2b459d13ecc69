// Command rimu is a thin CLI front end over the language core: parse a
// document, evaluate it against an environment, and serialize the
// result.
package main

import (
	"fmt"
	"os"

	"github.com/rimu-lang/rimu/cmd/rimu/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
