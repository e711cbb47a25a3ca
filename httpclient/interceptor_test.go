package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseURL(t *testing.T, s string) *url.URL {
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func echoMethodHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(r.Method + " " + string(body)))
	})
}

func TestInterceptorServesMatchingRoute(t *testing.T) {
	network, networkCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(http.StatusTeapot))
	interceptor := NewInterceptor(httphelpers.ClientFromHandler(network).Transport)
	interceptor.Route(mustParseURL(t, "https://reqres.in/api/users"), echoMethodHandler(http.StatusCreated))

	rc, err := NewRequestContext("https://reqres.in", NewHTTPClient(interceptor, 0))
	require.NoError(t, err)

	resp, err := rc.Post(context.Background(), "/api/users?x=1", RequestOptions{Data: "hello"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "POST hello", resp.Text())
	assert.Equal(t, "text/plain", resp.Headers.Get("Content-Type"))
	assert.Len(t, networkCh, 0)

	resp, err = rc.Get(context.Background(), "/api/users/2", RequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.Status)
	assert.Len(t, networkCh, 1)

	other, err := NewRequestContext("https://example.com", NewHTTPClient(interceptor, 0))
	require.NoError(t, err)
	resp, err = other.Get(context.Background(), "/api/users", RequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.Status, "route is scoped to its host")
}

func TestUnrouteRestoresPreviousRoute(t *testing.T) {
	interceptor := NewInterceptor(httphelpers.ClientFromHandler(httphelpers.HandlerWithStatus(http.StatusTeapot)).Transport)
	target := mustParseURL(t, "https://reqres.in/api/users")
	assert.False(t, interceptor.HasRoutes())

	unrouteFirst := interceptor.Route(target, httphelpers.HandlerWithStatus(http.StatusOK))
	unrouteSecond := interceptor.Route(target, httphelpers.HandlerWithStatus(http.StatusAccepted))
	rc, err := NewRequestContext("https://reqres.in", NewHTTPClient(interceptor, 0))
	require.NoError(t, err)

	status := func() int {
		resp, err := rc.Get(context.Background(), "/api/users", RequestOptions{})
		require.NoError(t, err)
		return resp.Status
	}

	assert.Equal(t, http.StatusAccepted, status())
	unrouteSecond()
	unrouteSecond()
	assert.Equal(t, http.StatusOK, status())
	unrouteFirst()
	assert.Equal(t, http.StatusTeapot, status())
	assert.False(t, interceptor.HasRoutes())
}

func TestInterceptorRespectsCancelledContext(t *testing.T) {
	interceptor := NewInterceptor(nil)
	interceptor.Route(mustParseURL(t, "https://reqres.in/api/users"), httphelpers.HandlerWithStatus(http.StatusOK))
	rc, err := NewRequestContext("https://reqres.in", NewHTTPClient(interceptor, 0))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = rc.Get(ctx, "/api/users", RequestOptions{})
	assert.Error(t, err)
}
