package httpclient

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// Interceptor implements http.RoundTripper. Requests whose URL matches a registered route are
// answered in-process by that route's handler and never reach the network; everything else
// goes to the next transport.
//
// Routes match on scheme, host and exact path. The query string is ignored. If more than
// one route is registered for the same URL, the most recent one wins, and removing it
// exposes the previous one again.
type Interceptor struct {
	next   http.RoundTripper
	routes []*route
	lock   sync.RWMutex
}

type route struct {
	key     string
	handler http.Handler
}

// NewInterceptor creates an Interceptor that passes unmatched requests to next. If next is
// nil, a pooled transport is used.
func NewInterceptor(next http.RoundTripper) *Interceptor {
	if next == nil {
		next = DefaultPooledTransport()
	}
	return &Interceptor{next: next}
}

func routeKey(u *url.URL) string {
	path := u.Path
	if path == "" {
		path = "/"
	}
	return u.Scheme + "://" + u.Host + path
}

// Route registers a handler for an absolute URL and returns a function that removes it.
func (i *Interceptor) Route(target *url.URL, handler http.Handler) (unroute func()) {
	r := &route{key: routeKey(target), handler: handler}
	i.lock.Lock()
	i.routes = append(i.routes, r)
	i.lock.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			i.lock.Lock()
			defer i.lock.Unlock()
			for n, existing := range i.routes {
				if existing == r {
					i.routes = append(i.routes[:n], i.routes[n+1:]...)
					break
				}
			}
		})
	}
}

// HasRoutes returns true if any route is registered.
func (i *Interceptor) HasRoutes() bool {
	i.lock.RLock()
	defer i.lock.RUnlock()
	return len(i.routes) != 0
}

func (i *Interceptor) match(u *url.URL) http.Handler {
	key := routeKey(u)
	i.lock.RLock()
	defer i.lock.RUnlock()
	for n := len(i.routes) - 1; n >= 0; n-- {
		if i.routes[n].key == key {
			return i.routes[n].handler
		}
	}
	return nil
}

// RoundTrip is required to implement http.RoundTripper. A matched request is fulfilled
// exactly once, by its handler, before RoundTrip returns.
func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	handler := i.match(req.URL)
	if handler == nil {
		return i.next.RoundTrip(req)
	}

	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	var body []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
		body = data
	}
	served := req.Clone(req.Context())
	served.Body = io.NopCloser(bytes.NewReader(body))
	served.ContentLength = int64(len(body))
	served.RequestURI = req.URL.RequestURI()
	served.RemoteAddr = "interceptor"

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, served)

	resp := recorder.Result()
	resp.Request = req
	resp.ContentLength = int64(recorder.Body.Len())
	return resp, nil
}
