// Package usertests contains the test suites for the user API: one that talks to the API
// directly, and one that runs against the mocked user API inside a page.
//
// The tests run in the harness's own test framework rather than the Go test runner, so that
// they can be run against any deployment of the API from the command line.
package usertests
