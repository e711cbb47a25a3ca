package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const jsonContentType = "application/json"

// Requester is a transport handle: anything that can issue an HTTP request on behalf of a
// test and return the fully read response. Both RequestContext and a page implement it.
type Requester interface {
	Fetch(ctx context.Context, method, path string, opts RequestOptions) (*APIResponse, error)
}

// RequestOptions describes the optional parts of a request.
type RequestOptions struct {
	// Params are added to the query string.
	Params url.Values

	// Headers are added to the request.
	Headers http.Header

	// Data, if not nil, is the request body. A []byte or string is sent as it is; anything
	// else is marshaled as JSON. If no Content-Type header was given, it defaults to
	// application/json.
	Data interface{}
}

// APIResponse is a fully read HTTP response.
type APIResponse struct {
	URL        string
	Status     int
	StatusText string
	Headers    http.Header
	Body       []byte
}

// OK returns true for any 2xx status.
func (r *APIResponse) OK() bool {
	return r.Status >= 200 && r.Status <= 299
}

// JSON decodes the response body into target.
func (r *APIResponse) JSON(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("malformed JSON response from %s: %w", r.URL, err)
	}
	return nil
}

// Text returns the response body as a string.
func (r *APIResponse) Text() string {
	return string(r.Body)
}

// RequestContext issues requests directly against a base URL.
type RequestContext struct {
	baseURL *url.URL
	client  *http.Client
}

// NewRequestContext creates a RequestContext. Relative request paths are resolved against
// baseURL. If client is nil, a pooled client with no timeout is used.
func NewRequestContext(baseURL string, client *http.Client) (*RequestContext, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	if client == nil {
		client = NewHTTPClient(nil, 0)
	}
	return &RequestContext{baseURL: u, client: client}, nil
}

// BaseURL returns the base URL that relative paths are resolved against.
func (rc *RequestContext) BaseURL() *url.URL {
	u := *rc.baseURL
	return &u
}

// ResolveURL resolves a path against the base URL. A path under the base URL's own path
// prefix keeps that prefix, so a base of http://host/endpoints/1 and a path of /api/users
// yield http://host/endpoints/1/api/users.
func (rc *RequestContext) ResolveURL(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	if ref.IsAbs() {
		return ref, nil
	}
	u := *rc.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(ref.Path, "/")
	u.RawPath = ""
	u.RawQuery = ref.RawQuery
	u.Fragment = ""
	return &u, nil
}

func (rc *RequestContext) Get(ctx context.Context, path string, opts RequestOptions) (*APIResponse, error) {
	return rc.Fetch(ctx, http.MethodGet, path, opts)
}

func (rc *RequestContext) Post(ctx context.Context, path string, opts RequestOptions) (*APIResponse, error) {
	return rc.Fetch(ctx, http.MethodPost, path, opts)
}

func (rc *RequestContext) Patch(ctx context.Context, path string, opts RequestOptions) (*APIResponse, error) {
	return rc.Fetch(ctx, http.MethodPatch, path, opts)
}

func (rc *RequestContext) Delete(ctx context.Context, path string, opts RequestOptions) (*APIResponse, error) {
	return rc.Fetch(ctx, http.MethodDelete, path, opts)
}

// Fetch sends a request and reads the whole response. It only returns an error if the
// request could not be made or the response could not be read; any HTTP status is a
// successful fetch.
func (rc *RequestContext) Fetch(ctx context.Context, method, path string, opts RequestOptions) (*APIResponse, error) {
	req, err := rc.newRequest(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}
	resp, err := rc.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body from %s: %w", req.URL, err)
	}
	return &APIResponse{
		URL:        req.URL.String(),
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

func (rc *RequestContext) newRequest(ctx context.Context, method, path string, opts RequestOptions) (*http.Request, error) {
	u, err := rc.ResolveURL(path)
	if err != nil {
		return nil, err
	}
	if len(opts.Params) > 0 {
		q := u.Query()
		for k, vs := range opts.Params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	body, err := getRequestBody(opts.Data)
	if err != nil {
		return nil, err
	}
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, err
	}
	for k, vs := range opts.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", jsonContentType)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", jsonContentType)
	}
	return req, nil
}

func getRequestBody(data interface{}) ([]byte, error) {
	switch body := data.(type) {
	case nil:
		return nil, nil
	case []byte:
		return body, nil
	case string:
		return []byte(body), nil
	case json.RawMessage:
		return body, nil
	default:
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not encode request body as JSON: %w", err)
		}
		return buf, nil
	}
}

// statusText returns the reason phrase sent by the server, or the standard one if the
// server sent none.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
