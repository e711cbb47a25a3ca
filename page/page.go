// Package page provides a browser-like page: an HTTP context with a current URL, which can
// navigate, issue requests from "inside" the page, and intercept the requests it makes.
package page

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/yjuanrodriguez/pw-api-testing/framework"
	"github.com/yjuanrodriguez/pw-api-testing/httpclient"
)

// DefaultNavigationTimeout is used by Goto when no timeout is given.
const DefaultNavigationTimeout = time.Second * 30

// Page is a browser-like HTTP context. It implements httpclient.Requester; every request it
// makes, including navigation, goes through its interception rules first.
type Page struct {
	*httpclient.RequestContext
	interceptor *httpclient.Interceptor
	currentURL  string
	logger      framework.Logger
}

// New creates a page whose relative URLs resolve against baseURL. Requests that no route
// intercepts are sent through transport; if it is nil, a pooled transport is used.
func New(baseURL string, transport http.RoundTripper, logger framework.Logger) (*Page, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	interceptor := httpclient.NewInterceptor(transport)
	enriched := httpclient.NewClient(interceptor).Use(httpclient.WithDebugLogging(logger))
	rc, err := httpclient.NewRequestContext(baseURL, httpclient.NewHTTPClient(enriched, 0))
	if err != nil {
		return nil, err
	}
	return &Page{
		RequestContext: rc,
		interceptor:    interceptor,
		logger:         logger,
	}, nil
}

// Route installs an interception rule for a path (or absolute URL) and returns a function
// that removes it. While the rule is installed, every request from this page to that URL
// is answered by the handler.
//
// If the page's base URL has a path, the handler sees request paths relative to it, so a
// handler for /api/users works the same on http://host/ and on http://host/endpoints/1.
func (p *Page) Route(path string, handler http.Handler) (unroute func(), err error) {
	target, err := p.ResolveURL(path)
	if err != nil {
		return nil, err
	}
	if prefix := strings.TrimSuffix(p.BaseURL().Path, "/"); prefix != "" &&
		strings.HasPrefix(target.Path, prefix+"/") {
		handler = http.StripPrefix(prefix, handler)
	}
	p.logger.Printf("Routing %s", target)
	return p.interceptor.Route(target, handler), nil
}

// Goto navigates the page with a GET request. The navigation fails if it does not complete
// within the timeout; an HTTP error status is not a navigation failure.
func (p *Page) Goto(ctx context.Context, path string, timeout time.Duration) (*httpclient.APIResponse, error) {
	if timeout <= 0 {
		timeout = DefaultNavigationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	headers := make(http.Header)
	headers.Set("Accept", "text/html,application/xhtml+xml,*/*")
	resp, err := p.Fetch(ctx, http.MethodGet, path, httpclient.RequestOptions{Headers: headers})
	if err != nil {
		return nil, err
	}
	p.currentURL = resp.URL
	return resp, nil
}

// URL returns the URL of the last successful navigation, or an empty string.
func (p *Page) URL() string {
	return p.currentURL
}
