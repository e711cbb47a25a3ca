package framework

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHarness(t *testing.T) *TestHarness {
	h, err := NewTestHarness("localhost", 0, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestMockEndpointReceivesSubpathRequests(t *testing.T) {
	h := newTestHarness(t)
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(http.StatusTeapot))
	e := h.NewMockEndpoint(handler, "teapot", nil)
	defer e.Close()

	assert.True(t, strings.HasPrefix(e.BaseURL(), h.BaseURL()+"/endpoints/"))

	resp, err := http.Post(e.BaseURL()+"/api/users?page=2", "application/json", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	info, err := e.AwaitConnection(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "POST", info.Method)
	assert.Equal(t, "/api/users", info.Path)
	assert.Equal(t, "page=2", info.Query)
	assert.Equal(t, `{"a":1}`, string(info.Body))

	recorded := <-requestsCh
	assert.Equal(t, "/api/users", recorded.Request.URL.Path)
	assert.Equal(t, "2", recorded.Request.URL.Query().Get("page"))
	assert.Equal(t, `{"a":1}`, string(recorded.Body))
}

func TestUnknownPathsReturn404(t *testing.T) {
	h := newTestHarness(t)

	for _, path := range []string{"/other", "/endpoints/999"} {
		resp, err := http.Get(h.BaseURL() + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestClosedEndpointReturns404(t *testing.T) {
	h := newTestHarness(t)
	e := h.NewMockEndpoint(httphelpers.HandlerWithStatus(http.StatusOK), "closed", nil)
	e.Close()

	resp, err := http.Get(e.BaseURL())
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, err = e.AwaitConnection(time.Millisecond * 10)
	assert.Error(t, err)
}

func TestAwaitConnectionTimesOut(t *testing.T) {
	h := newTestHarness(t)
	e := h.NewMockEndpoint(httphelpers.HandlerWithStatus(http.StatusOK), "idle", nil)
	defer e.Close()

	_, err := e.AwaitConnection(time.Millisecond * 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out waiting for an incoming request to idle")
}

func TestAwaitService(t *testing.T) {
	h := newTestHarness(t)
	e := h.NewMockEndpoint(httphelpers.HandlerWithStatus(http.StatusUnauthorized), "service", nil)
	defer e.Close()

	var out bytes.Buffer
	require.NoError(t, AwaitService(nil, e.BaseURL(), time.Second, &out))
	assert.Contains(t, out.String(), "responded with status 401")

	err := AwaitService(nil, "http://localhost:1/", time.Millisecond*50, io.Discard)
	assert.Error(t, err)
}
