// main is the entry point for the scoresmith CLI.
package main

import (
	"fmt"
	"os"

	"github.com/quantgeo/scoresmith/cmd"
	"github.com/quantgeo/scoresmith/internal/runstore"
)

func main() {
	err := cmd.Execute()
	runstore.CloseStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
