package framework

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const endpointPathPrefix = "/endpoints/"
const httpListenerTimeout = time.Second * 10

// TestHarness is an HTTP listener that dispatches incoming requests to mock endpoints.
type TestHarness struct {
	externalBaseURL string
	server          *http.Server
	endpoints       map[string]*MockEndpoint
	lastEndpointID  int
	logger          Logger
	lock            sync.Mutex
}

// NewTestHarness starts an HTTP listener on the specified port, which can be zero to pick any
// free port, and waits until it is accepting requests. The external hostname is used when
// building endpoint URLs.
func NewTestHarness(
	externalHostname string,
	port int,
	debugLogger Logger,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("could not start test harness listener: %w", err)
	}
	actualPort := listener.Addr().(*net.TCPAddr).Port

	h := &TestHarness{
		externalBaseURL: fmt.Sprintf("http://%s:%d", externalHostname, actualPort),
		endpoints:       make(map[string]*MockEndpoint),
		logger:          debugLogger,
	}

	if err = h.startServer(listener, actualPort); err != nil {
		return nil, err
	}

	return h, nil
}

// BaseURL returns the externally visible base URL of the harness listener.
func (h *TestHarness) BaseURL() string {
	return h.externalBaseURL
}

// Close stops the listener. Any active requests are cancelled.
func (h *TestHarness) Close() error {
	h.lock.Lock()
	endpoints := make([]*MockEndpoint, 0, len(h.endpoints))
	for _, e := range h.endpoints {
		endpoints = append(endpoints, e)
	}
	h.lock.Unlock()
	for _, e := range endpoints {
		e.Close()
	}
	return h.server.Close()
}

func (h *TestHarness) serveHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodHead && req.URL.Path == "/" {
		w.WriteHeader(http.StatusOK) // we use this to test whether our own listener is active yet
		return
	}

	if !strings.HasPrefix(req.URL.Path, endpointPathPrefix) {
		h.logger.Printf("Received request for unrecognized URL path %s", req.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	path := strings.TrimPrefix(req.URL.Path, endpointPathPrefix)
	var endpointID string
	slashPos := strings.Index(path, "/")
	if slashPos >= 0 {
		endpointID = path[0:slashPos]
		path = path[slashPos:]
	} else {
		endpointID = path
		path = ""
	}

	h.lock.Lock()
	e := h.endpoints[endpointID]
	h.lock.Unlock()
	if e == nil {
		h.logger.Printf("Received request for unrecognized endpoint %s", req.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var body []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			h.logger.Printf("Unexpected error trying to read request body: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body = data
	}

	ctx, canceller := context.WithCancel(req.Context())
	cancellerPtr := &canceller
	if !e.track(cancellerPtr) {
		canceller()
		w.WriteHeader(http.StatusNotFound)
		return
	}

	incoming := IncomingRequestInfo{
		Headers: req.Header,
		Method:  req.Method,
		Path:    path,
		Query:   req.URL.RawQuery,
		Body:    body,
		Context: ctx,
	}
	e.recordRequest(incoming)

	transformedReq := req.WithContext(ctx)
	url := *req.URL
	url.Path = path
	url.RawPath = ""
	transformedReq.URL = &url
	transformedReq.RequestURI = url.RequestURI()
	transformedReq.Body = io.NopCloser(bytes.NewReader(body))

	e.handler.ServeHTTP(w, transformedReq)

	e.untrack(cancellerPtr)
	canceller()
}

func (h *TestHarness) startServer(listener net.Listener, port int) error {
	h.server = &http.Server{
		Handler:           http.HandlerFunc(h.serveHTTP),
		ReadHeaderTimeout: httpListenerTimeout,
	}
	go func() {
		if err := h.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Printf("Test harness listener stopped: %s", err)
		}
	}()

	// Wait till the server is definitely listening for requests before we run any tests
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("could not detect own listener at %s", listener.Addr())
		case <-ticker.C:
			resp, err := http.DefaultClient.Head(fmt.Sprintf("http://localhost:%d/", port))
			if err == nil {
				_ = resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return nil
				}
			}
		}
	}
}
