package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of a single test or subtest. It implements the same basic methods as
// Go's *testing.T, so it can be passed to the assert and require packages.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	deferred    []func()
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes the root test action and returns the accumulated results of it and all of
// its subtests.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.recordPanic(r)
		}
		if len(c.id.Path) == 0 && !c.failed {
			return // the root scope only produces a result if its own cleanup failed
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()
	defer c.runDeferred()

	action(c)
}

func (c *Context) recordPanic(r interface{}) {
	if c.skipped {
		return
	}
	c.failed = true
	var addError error
	if _, ok := r.(*Context); ok {
		if len(c.errors) == 0 {
			addError = errors.New("test failed with no failure message")
		}
	} else {
		addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
	}
	if addError != nil {
		c.errors = append(c.errors, addError)
		c.env.testLogger.TestError(c.id, addError)
	}
}

// runDeferred calls the registered cleanup functions in reverse order. A failing cleanup
// function does not prevent the others from running.
func (c *Context) runDeferred() {
	for len(c.deferred) > 0 {
		last := len(c.deferred) - 1
		fn := c.deferred[last]
		c.deferred = c.deferred[:last]
		func() {
			defer func() {
				if r := recover(); r != nil {
					skipped := c.skipped
					c.skipped = false // a cleanup failure is reported even in a skipped test
					c.recordPanic(r)
					c.skipped = skipped
				}
			}()
			fn()
		}()
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped && !c1.failed {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Defer schedules a function to be called when this test scope ends, after all of its
// subtests have run. Functions are called in reverse order of registration, whether or
// not the test failed. Assertions made inside a deferred function count against this scope.
func (c *Context) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow marks the test as failed and exits it immediately. The methods in the require
// package call FailNow.
func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

// Failed reports whether the test has failed so far.
func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
