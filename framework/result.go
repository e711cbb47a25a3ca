package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Find returns the result for the test with the given path, if it ran.
func (r Results) Find(path ...string) (TestResult, bool) {
	want := TestID{Path: path}.String()
	for _, t := range r.Tests {
		if t.TestID.String() == want {
			return t, true
		}
	}
	return TestResult{}, false
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// PrintResults writes a summary of the test run, listing every failed test.
func PrintResults(out io.Writer, results Results) {
	skipped := 0
	for _, t := range results.Tests {
		if t.Skipped {
			skipped++
		}
	}
	passed := len(results.Tests) - len(results.Failures) - skipped

	if results.OK() {
		fmt.Fprintln(out, color.GreenString("All tests passed (%d passed, %d skipped)", passed, skipped))
		return
	}
	fmt.Fprintln(out, color.RedString("FAILED TESTS (%d of %d):", len(results.Failures), len(results.Tests)))
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
	fmt.Fprintf(out, "%d passed, %d failed, %d skipped\n", passed, len(results.Failures), skipped)
}
