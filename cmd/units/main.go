// Command units converts between physical units, evaluates nonlinear
// unit functions, and can check a units database for consistency.
package main

import (
	"fmt"
	"os"

	"github.com/ryantenney/go-units/cmd/units/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(cmd.ExitCodeFor(err))
	}
}
