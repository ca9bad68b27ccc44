/*
Conformance harness CLI.

Drives a running classification service through every supported input mode
of its HTTP boundary and prints a pass/fail report. Exits non-zero unless
every check passes.

Usage:

	conformance [-base-url http://localhost:5242]
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chordal/inference/internal/harness"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:5242", "Base address of the service under test")
	flag.Parse()

	fmt.Println("🚀 Starting classification API conformance checks")
	fmt.Println("Target:", *baseURL)
	fmt.Println("──────────────────────────────────────────")

	runner := harness.NewRunner(*baseURL)
	outcomes := runner.Run()

	if !runner.Report(outcomes) {
		os.Exit(1)
	}
}
