package usertests

import (
	"github.com/stretchr/testify/require"

	"github.com/yjuanrodriguez/pw-api-testing/framework"
	"github.com/yjuanrodriguez/pw-api-testing/httpclient"
)

// RunTestSuite runs both suites and returns the results.
func RunTestSuite(
	env Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	if env.Transport == nil {
		env.Transport = httpclient.DefaultPooledTransport()
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, &env)
		data, err := loadTestData()
		require.NoError(t, err)
		env.data = data

		t.Run("mocked user API", DoMockedUserAPITests)
		t.Run("API tests", DoAPITests)
	})
}
