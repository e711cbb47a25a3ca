// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of API contract tests.
//
// The general model is:
//
// 1. The tests talk to a target service over HTTP, either the real remote API or a reference
// implementation that the harness serves from one of its own mock endpoints.
//
// 2. The test harness can expose any number of mock endpoints to receive requests.
//
// 3. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier, to accumulate
// success/failure results, and to register teardown actions.
//
// The domain-specific code that knows what is being tested is responsible for providing
// the HTTP clients, the handlers for mock endpoints, and a domain-specific test API on top
// of the test context.
package framework
