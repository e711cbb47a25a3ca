package usertests

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/require"

	"github.com/yjuanrodriguez/pw-api-testing/config"
	"github.com/yjuanrodriguez/pw-api-testing/fixtures"
	"github.com/yjuanrodriguez/pw-api-testing/framework"
	"github.com/yjuanrodriguez/pw-api-testing/httpclient"
	"github.com/yjuanrodriguez/pw-api-testing/page"
)

const (
	userAgentApp     = "pw-api-testing"
	userAgentVersion = "1.0.0"
)

// Environment is what every test in the suites has access to.
type Environment struct {
	Config config.Config
	// Transport carries every request that is not intercepted. If nil, a pooled transport
	// is used.
	Transport http.RoundTripper

	data testData
}

// T represents a test or subtest in the user API suites.
//
// It implements the same basic functionality as Go's testing.T, so it can be passed to the
// assert and require packages, and adds the fixtures that the tests use: an API client and a
// page with the mocked user API installed. Resources created through T are released when the
// test ends.
type T struct {
	context *framework.Context
	env     *Environment
	ctx     context.Context
	api     *fixtures.APIClient
}

func newTestScope(c *framework.Context, env *Environment) *T {
	ctx, cancel := context.WithCancel(context.Background())
	c.Defer(cancel)
	return &T{context: c, env: env, ctx: ctx}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Defer schedules a function to run when this test ends, after all of its subtests. This is
// how a suite cleans up after all of its tests have run.
func (t *T) Defer(fn func()) {
	t.context.Defer(fn)
}

// Ctx returns a context that is cancelled when the test ends.
func (t *T) Ctx() context.Context {
	return t.ctx
}

// API returns a client for calling the user API directly. Requests are logged to the test's
// debug output.
func (t *T) API() *fixtures.APIClient {
	if t.api == nil {
		client := httpclient.NewClient(t.env.Transport).Use(
			httpclient.WithAPIKey(t.env.Config.APIKey),
			httpclient.WithUserAgent(userAgentApp, userAgentVersion),
			httpclient.WithDebugLogging(t.context.DebugLogger()),
		)
		rc, err := httpclient.NewRequestContext(t.env.Config.APIBaseURL,
			httpclient.NewHTTPClient(client, t.env.Config.RequestTimeout))
		require.NoError(t, err)
		t.api = fixtures.NewAPIClient(rc)
	}
	return t.api
}

// NewPage opens a page on the configured page URL.
func (t *T) NewPage() *page.Page {
	transport := httpclient.NewClient(t.env.Transport).Use(
		httpclient.WithAPIKey(t.env.Config.APIKey),
		httpclient.WithUserAgent(userAgentApp, userAgentVersion),
	)
	p, err := page.New(t.env.Config.PageURL, transport, t.context.DebugLogger())
	require.NoError(t, err)
	return p
}

// MockedPage opens a page on which the mocked user API is installed for the rest of this test.
func (t *T) MockedPage() *page.Page {
	p := t.NewPage()
	unroute, err := fixtures.InstallMockUserAPI(p, t.context.DebugLogger())
	require.NoError(t, err)
	t.Defer(unroute)
	return p
}

// Goto navigates a page, failing the test if the navigation does not succeed.
func (t *T) Goto(p *page.Page, path string) {
	resp, err := p.Goto(t.ctx, path, t.env.Config.NavigationTimeout)
	require.NoError(t, err, "navigation to %s failed", path)
	t.Debug("navigated to %s: %d %s", p.URL(), resp.Status, resp.StatusText)
}
