// Package httpclient provides the transport handles that tests use to talk to the user API:
// a RequestContext for direct API calls, an enrichable http.RoundTripper with middleware, and
// an Interceptor that answers requests for specific routes in-process instead of sending them
// over the network.
package httpclient
