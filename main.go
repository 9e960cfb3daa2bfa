// ABOUTME: Entry point for the jambosec CLI
// ABOUTME: Command-line client for the JamboSec cybersecurity assistant

package main

import (
	"fmt"
	"os"

	"github.com/jambosec/jambosec-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
