package framework

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapturedOutputDump(t *testing.T) {
	output := CapturedOutput{
		{Time: time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC), Message: "first"},
		{Time: time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC), Message: "second"},
	}
	var buf bytes.Buffer
	output.Dump(&buf, "  DEBUG ")
	assert.Equal(t,
		"  DEBUG [2024-01-02 03:04:05.006] first\n  DEBUG [2024-01-02 03:04:06.000] second\n",
		buf.String())
}

func TestLoggerWithPrefixOfNilLogger(t *testing.T) {
	LoggerWithPrefix(nil, "x").Printf("does not panic")
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, Results{Tests: []TestResult{{TestID: id("a")}, {TestID: id("b"), Skipped: true}}})
	assert.Contains(t, buf.String(), "All tests passed (1 passed, 1 skipped)")

	failure := TestResult{TestID: id("suite", "c"), Errors: []error{assert.AnError}}
	buf.Reset()
	PrintResults(&buf, Results{Tests: []TestResult{{TestID: id("a")}, failure}, Failures: []TestResult{failure}})
	assert.Contains(t, buf.String(), "FAILED TESTS (1 of 2):")
	assert.Contains(t, buf.String(), "  suite/c\n    "+assert.AnError.Error())
	assert.Contains(t, buf.String(), "1 passed, 1 failed, 0 skipped")
}
