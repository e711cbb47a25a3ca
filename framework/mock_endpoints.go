package framework

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const defaultAwaitConnectionTimeout = time.Second * 5
const defaultRequestBufferSize = 100

// MockEndpoint represents an endpoint that can receive requests.
type MockEndpoint struct {
	owner       *TestHarness
	id          string
	description string
	basePath    string
	handler     http.Handler
	requests    chan IncomingRequestInfo
	cancels     []*context.CancelFunc
	closed      bool
	logger      Logger
	lock        sync.Mutex
	closing     sync.Once
}

// IncomingRequestInfo contains information about an HTTP request sent to one of the mock
// endpoints. Path is relative to the endpoint's base URL.
type IncomingRequestInfo struct {
	Headers http.Header
	Method  string
	Path    string
	Query   string
	Body    []byte
	Context context.Context
}

// NewMockEndpoint adds a new endpoint that can receive requests.
//
// The specified handler will be called for all incoming requests to the endpoint's
// base URL or any subpath of it. For instance, if the generated base URL (as reported
// by MockEndpoint.BaseURL()) is http://localhost:8111/endpoints/3, then it can also
// receive requests to http://localhost:8111/endpoints/3/api/users.
//
// When the handler is called, the test harness rewrites the request URL first so that
// the handler sees only the subpath. It also attaches a Context to the request whose
// Done channel will be closed if Close is called on the endpoint.
func (h *TestHarness) NewMockEndpoint(
	handler http.Handler,
	description string,
	logger Logger,
) *MockEndpoint {
	if logger == nil {
		logger = h.logger
	}
	e := &MockEndpoint{
		owner:       h,
		description: description,
		handler:     handler,
		requests:    make(chan IncomingRequestInfo, defaultRequestBufferSize),
		logger:      logger,
	}
	h.lock.Lock()
	h.lastEndpointID++
	e.id = strconv.Itoa(h.lastEndpointID)
	e.basePath = endpointPathPrefix + e.id
	h.endpoints[e.id] = e
	h.lock.Unlock()

	return e
}

// BaseURL returns the base URL of the mock endpoint.
func (e *MockEndpoint) BaseURL() string {
	return e.owner.externalBaseURL + e.basePath
}

// AwaitConnection waits for an incoming request to the endpoint.
func (e *MockEndpoint) AwaitConnection(timeout time.Duration) (IncomingRequestInfo, error) {
	if timeout <= 0 {
		timeout = defaultAwaitConnectionTimeout
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case cxn, ok := <-e.requests:
		if !ok {
			return IncomingRequestInfo{}, fmt.Errorf("endpoint for %s was closed", e.description)
		}
		return cxn, nil
	case <-deadline.C:
		return IncomingRequestInfo{}, fmt.Errorf("timed out waiting for an incoming request to %s", e.description)
	}
}

func (e *MockEndpoint) recordRequest(incoming IncomingRequestInfo) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.closed {
		return
	}
	e.logger.Printf("%s %s%s", incoming.Method, e.description, incoming.Path)
	select { // non-blocking push
	case e.requests <- incoming:
	default:
		e.logger.Printf("Incoming request buffer was full for %s", e.description)
	}
}

func (e *MockEndpoint) track(cancel *context.CancelFunc) bool {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.closed {
		return false
	}
	e.cancels = append(e.cancels, cancel)
	return true
}

func (e *MockEndpoint) untrack(cancel *context.CancelFunc) {
	e.lock.Lock()
	for i, c := range e.cancels {
		if c == cancel { // can't compare functions with ==, but can compare pointers
			e.cancels = append(e.cancels[:i], e.cancels[i+1:]...)
			break
		}
	}
	e.lock.Unlock()
}

// Close unregisters the endpoint. Any subsequent requests to it will receive 404 errors.
// It also cancels the Context for every active request to that endpoint.
func (e *MockEndpoint) Close() {
	e.closing.Do(func() {
		e.owner.lock.Lock()
		delete(e.owner.endpoints, e.id)
		e.owner.lock.Unlock()

		e.lock.Lock()
		cancellers := e.cancels
		e.cancels = nil
		e.closed = true
		close(e.requests)
		e.lock.Unlock()

		for _, cancel := range cancellers {
			(*cancel)()
		}
	})
}
