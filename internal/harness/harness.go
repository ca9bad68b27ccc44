// Package harness drives a live classification service through every
// supported input mode of its boundary and reports conformance. It talks to
// the service only over HTTP; it never imports the service's internals.
package harness

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// TestOutcome is the pass/fail record for one check. Outcomes are created
// per check, accumulated in battery order, and never mutated afterward.
type TestOutcome struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// Runner executes the conformance battery against one base address.
// Checks run strictly one after another; a failing check never stops the
// ones behind it.
type Runner struct {
	BaseURL    string
	Client     *http.Client
	Out        io.Writer
	ScratchDir string
}

// NewRunner creates a runner with a bounded request timeout so a hung
// service fails a check instead of hanging the whole battery.
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:    baseURL,
		Client:     &http.Client{Timeout: 15 * time.Second},
		Out:        os.Stdout,
		ScratchDir: "temp",
	}
}

// Run executes all checks in their required order, printing each outcome as
// it completes, and returns the ordered outcome list.
func (r *Runner) Run() []TestOutcome {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Health Check", r.checkHealth},
		{"API Info", r.checkInfo},
		{"JSON Analysis", r.checkAnalyzeJSON},
		{"File Upload", r.checkUpload},
		{"Preprocessed Data", r.checkPreprocessed},
	}

	outcomes := make([]TestOutcome, 0, len(checks))
	for _, check := range checks {
		err := check.fn()
		if err != nil {
			fmt.Fprintf(r.Out, "❌ FAILED: %s: %v\n", check.name, err)
		} else {
			fmt.Fprintf(r.Out, "✅ PASSED: %s\n", check.name)
		}
		outcomes = append(outcomes, TestOutcome{Name: check.name, Passed: err == nil})
	}
	return outcomes
}

// Report prints the aggregate tally and returns true iff every check passed.
func (r *Runner) Report(outcomes []TestOutcome) bool {
	passed := 0
	for _, o := range outcomes {
		if o.Passed {
			passed++
		}
	}

	fmt.Fprintln(r.Out, "──────────────────────────────────────────")
	fmt.Fprintln(r.Out, "Conformance results:")
	for _, o := range outcomes {
		icon := "✅ PASSED"
		if !o.Passed {
			icon = "❌ FAILED"
		}
		fmt.Fprintf(r.Out, "  %s: %s\n", icon, o.Name)
	}
	fmt.Fprintf(r.Out, "\nOverall: %d/%d checks passed\n", passed, len(outcomes))

	return passed == len(outcomes)
}
