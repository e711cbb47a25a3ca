package httpclient

import (
	"net/http"
)

// Responder is a callback that receives an http request and returns a response.
type Responder func(*http.Request) (*http.Response, error)

// MiddlewareFunc defines a function to process middleware.
type MiddlewareFunc func(next Responder) Responder

// Client is an http.RoundTripper that runs every request through a chain of middleware
// before handing it to the underlying transport.
type Client struct {
	defaultResponder Responder
	middleware       []MiddlewareFunc
}

// NewClient wraps the provided transport. If it is nil, a pooled transport is used.
func NewClient(transport http.RoundTripper) *Client {
	if transport == nil {
		transport = DefaultPooledTransport()
	}
	return &Client{
		defaultResponder: transport.RoundTrip,
	}
}

// Use adds middleware to the chain which is run on processing request. Middleware added
// first sees the request first.
func (c *Client) Use(middleware ...MiddlewareFunc) *Client {
	c.middleware = append(c.middleware, middleware...)
	return c
}

// RoundTrip executes a single HTTP transaction, returning a Response for the provided Request
func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	h := applyMiddleware(c.defaultResponder, c.middleware...)
	return h(req)
}

func applyMiddleware(h Responder, middleware ...MiddlewareFunc) Responder {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
