package usertests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/yjuanrodriguez/pw-api-testing/httpclient"
	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
)

var userFields = []string{"id", "email", "first_name", "last_name", "avatar"}

// fetchFromPage issues a request from inside a freshly navigated page that has the mocked
// user API installed.
func fetchFromPage(t *T, method string, body interface{}) *httpclient.APIResponse {
	p := t.MockedPage()
	t.Goto(p, "/")

	resp, err := p.Fetch(t.Ctx(), method, servicedef.UsersPath, httpclient.RequestOptions{Data: body})
	require.NoError(t, err)
	t.Debug("response: %d %s", resp.Status, resp.Text())
	return resp
}

func DoMockedUserAPITests(t *T) {
	t.Run("mocks user api GET", func(t *T) {
		resp := fetchFromPage(t, http.MethodGet, nil)
		require.Equal(t, http.StatusOK, resp.Status)

		var data ldvalue.Value
		require.NoError(t, resp.JSON(&data))
		assert.ElementsMatch(t, userFields, data.Keys(), "ERROR: User data should have exactly the user properties")
		assert.Equal(t, ldvalue.NumberType, data.GetByKey("id").Type(), "ERROR: User id should be a number")
		for _, field := range userFields[1:] {
			assert.Equal(t, ldvalue.StringType, data.GetByKey(field).Type(), "ERROR: User %s should be a string", field)
		}
		assert.Contains(t, data.GetByKey("email").StringValue(), "@", "ERROR: Email should contain @ symbol")
		assert.Contains(t, data.GetByKey("avatar").StringValue(), "https://", "ERROR: Avatar URL should contain https://")
	})

	t.Run("mocks user api POST", func(t *T) {
		requestBody := ldvalue.ObjectBuild().
			Set("first_name", ldvalue.String("Jan")).
			Set("last_name", ldvalue.String("Kowalski")).
			Set("email", ldvalue.String("jan@example.com")).
			Build()
		resp := fetchFromPage(t, http.MethodPost, requestBody)
		require.Equal(t, http.StatusCreated, resp.Status)

		var data ldvalue.Value
		require.NoError(t, resp.JSON(&data))
		assert.Equal(t, ldvalue.NumberType, data.GetByKey("id").Type(), "ERROR: User id should be a number")
		for _, key := range requestBody.Keys() {
			assert.Equal(t, requestBody.GetByKey(key), data.GetByKey(key), "ERROR: %s should be echoed", key)
		}
		assert.Contains(t, data.GetByKey("email").StringValue(), "@", "ERROR: Email should contain @ symbol")
	})

	t.Run("mocks user api PATCH", func(t *T) {
		requestBody := ldvalue.ObjectBuild().Set("email", ldvalue.String("patched@example.com")).Build()
		resp := fetchFromPage(t, http.MethodPatch, requestBody)
		require.Equal(t, http.StatusOK, resp.Status)

		var data ldvalue.Value
		require.NoError(t, resp.JSON(&data))
		assert.ElementsMatch(t, userFields, data.Keys(), "ERROR: patched user should have the user properties")
		assert.Equal(t, "patched@example.com", data.GetByKey("email").StringValue(), "ERROR: patched email should be updated")
	})

	t.Run("mocks user api DELETE", func(t *T) {
		resp := fetchFromPage(t, http.MethodDelete, `{"ignored":true}`)
		assert.Equal(t, http.StatusNoContent, resp.Status)
		assert.Empty(t, resp.Text())
	})
}
