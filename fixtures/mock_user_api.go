package fixtures

import (
	"github.com/yjuanrodriguez/pw-api-testing/framework"
	"github.com/yjuanrodriguez/pw-api-testing/page"
	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
	"github.com/yjuanrodriguez/pw-api-testing/usermock"
)

// InstallMockUserAPI routes the page's requests for the user collection path to the mock
// handler. The returned function removes the route; callers normally pass it to the test's
// Defer so that the mock lives for exactly one test.
func InstallMockUserAPI(p *page.Page, logger framework.Logger) (func(), error) {
	return p.Route(servicedef.UsersPath, usermock.NewHandler(logger))
}
