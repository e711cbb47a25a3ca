package fakeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/yjuanrodriguez/pw-api-testing/httpclient"
	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
)

var fixedTime = time.Date(2024, time.March, 5, 14, 30, 15, 123456789, time.UTC)

func withAPI(t *testing.T, config Config, action func(*httpclient.RequestContext)) {
	if config.Now == nil {
		config.Now = func() time.Time { return fixedTime }
	}
	httphelpers.WithServer(NewHandler(config), func(server *httptest.Server) {
		rc, err := httpclient.NewRequestContext(server.URL, server.Client())
		require.NoError(t, err)
		action(rc)
	})
}

func fetch(t *testing.T, rc *httpclient.RequestContext, method, path string, data interface{}) *httpclient.APIResponse {
	resp, err := rc.Fetch(context.Background(), method, path, httpclient.RequestOptions{Data: data})
	require.NoError(t, err)
	return resp
}

func TestUsers(t *testing.T) {
	users := Users()
	require.Len(t, users, 12)
	assert.Equal(t, servicedef.User{
		ID:        7,
		Email:     "michael.lawson@reqres.in",
		FirstName: "Michael",
		LastName:  "Lawson",
		Avatar:    "https://reqres.in/img/faces/7-image.jpg",
	}, users[6])
	assert.Equal(t, "eve.holt@reqres.in", users[3].Email)
}

func TestListUsers(t *testing.T) {
	withAPI(t, Config{}, func(rc *httpclient.RequestContext) {
		t.Run("default page", func(t *testing.T) {
			var list servicedef.UsersListResponse
			require.NoError(t, fetch(t, rc, http.MethodGet, servicedef.UsersPath, nil).JSON(&list))
			assert.Equal(t, 1, list.Page)
			assert.Equal(t, 6, list.PerPage)
			assert.Equal(t, 12, list.Total)
			assert.Equal(t, 2, list.TotalPages)
			require.Len(t, list.Data, 6)
			assert.Equal(t, 1, list.Data[0].ID)
		})

		t.Run("second page", func(t *testing.T) {
			var list servicedef.UsersListResponse
			require.NoError(t, fetch(t, rc, http.MethodGet, servicedef.UsersPath+"?page=2", nil).JSON(&list))
			assert.Equal(t, 2, list.Page)
			require.Len(t, list.Data, 6)
			assert.Equal(t, "Michael", list.Data[0].FirstName)
		})

		t.Run("custom page size", func(t *testing.T) {
			var list servicedef.UsersListResponse
			require.NoError(t, fetch(t, rc, http.MethodGet, servicedef.UsersPath+"?page=3&per_page=5", nil).JSON(&list))
			assert.Equal(t, 3, list.TotalPages)
			require.Len(t, list.Data, 2)
			assert.Equal(t, 11, list.Data[0].ID)
		})

		t.Run("huge page", func(t *testing.T) {
			resp := fetch(t, rc, http.MethodGet, servicedef.UsersPath+"?page=4611686018427387904&per_page=4", nil)
			require.Equal(t, http.StatusOK, resp.Status)
			var list servicedef.UsersListResponse
			require.NoError(t, resp.JSON(&list))
			assert.Equal(t, 3, list.TotalPages)
			assert.Len(t, list.Data, 0)
		})

		t.Run("huge page size", func(t *testing.T) {
			var list servicedef.UsersListResponse
			require.NoError(t, fetch(t, rc, http.MethodGet, servicedef.UsersPath+"?per_page=9223372036854775807", nil).JSON(&list))
			assert.Equal(t, 1, list.TotalPages)
			assert.Len(t, list.Data, 12)
		})

		t.Run("past the end", func(t *testing.T) {
			var list servicedef.UsersListResponse
			require.NoError(t, fetch(t, rc, http.MethodGet, servicedef.UsersPath+"?page=9", nil).JSON(&list))
			assert.NotNil(t, list.Data)
			assert.Len(t, list.Data, 0)
		})
	})
}

func TestGetUser(t *testing.T) {
	withAPI(t, Config{}, func(rc *httpclient.RequestContext) {
		resp := fetch(t, rc, http.MethodGet, servicedef.UserPath("2"), nil)
		require.Equal(t, http.StatusOK, resp.Status)
		var body struct {
			Data servicedef.User `json:"data"`
		}
		require.NoError(t, resp.JSON(&body))
		assert.Equal(t, "janet.weaver@reqres.in", body.Data.Email)

		resp = fetch(t, rc, http.MethodGet, servicedef.UserPath("23"), nil)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.JSONEq(t, `{}`, resp.Text())
	})
}

func TestCreateUser(t *testing.T) {
	withAPI(t, Config{}, func(rc *httpclient.RequestContext) {
		resp := fetch(t, rc, http.MethodPost, servicedef.UsersPath, servicedef.CreateUserRequest{Name: "morpheus", Job: "leader"})
		require.Equal(t, http.StatusCreated, resp.Status)

		var created servicedef.CreateUserResponse
		require.NoError(t, resp.JSON(&created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, ldvalue.NewOptionalString("morpheus"), created.Name)
		assert.Equal(t, ldvalue.NewOptionalString("leader"), created.Job)
		assert.Equal(t, "2024-03-05T14:30:15.123Z", created.CreatedAt)

		value := ldvalue.Parse(resp.Body)
		assert.Equal(t, ldvalue.StringType, value.GetByKey("id").Type())
	})
}

func TestUpdateUser(t *testing.T) {
	withAPI(t, Config{}, func(rc *httpclient.RequestContext) {
		for _, method := range []string{http.MethodPut, http.MethodPatch} {
			t.Run(method, func(t *testing.T) {
				resp := fetch(t, rc, method, servicedef.UserPath("2"), `{"name":"Updated Name","job":"Updated Job"}`)
				require.Equal(t, http.StatusOK, resp.Status)
				assert.JSONEq(t, `{"name":"Updated Name","job":"Updated Job","updatedAt":"2024-03-05T14:30:15.123Z"}`, resp.Text())
			})
		}
	})
}

func TestDeleteUser(t *testing.T) {
	withAPI(t, Config{}, func(rc *httpclient.RequestContext) {
		resp := fetch(t, rc, http.MethodDelete, servicedef.UserPath("2"), nil)
		assert.Equal(t, http.StatusNoContent, resp.Status)
		assert.Empty(t, resp.Body)
	})
}

func TestRegisterAndLogin(t *testing.T) {
	creds := servicedef.Credentials{Email: "eve.holt@reqres.in", Password: "cityslicka"}
	withAPI(t, Config{}, func(rc *httpclient.RequestContext) {
		resp := fetch(t, rc, http.MethodPost, servicedef.RegisterPath, creds)
		require.Equal(t, http.StatusOK, resp.Status)
		var registered servicedef.AuthResponse
		require.NoError(t, resp.JSON(&registered))
		assert.Equal(t, ldvalue.Int(4), registered.ID)
		require.True(t, registered.Token.IsDefined())
		assert.NotEmpty(t, registered.Token.StringValue())

		resp = fetch(t, rc, http.MethodPost, servicedef.LoginPath, creds)
		require.Equal(t, http.StatusOK, resp.Status)
		var loggedIn servicedef.AuthResponse
		require.NoError(t, resp.JSON(&loggedIn))
		assert.Equal(t, registered.Token, loggedIn.Token)
	})
}

func TestAuthErrors(t *testing.T) {
	cases := []struct {
		path, body, message string
	}{
		{servicedef.RegisterPath, `{"email":"sydney@fife"}`, errMissingPassword},
		{servicedef.RegisterPath, `{"password":"pistol"}`, errMissingEmail},
		{servicedef.RegisterPath, `{"email":"sydney@fife","password":"pistol"}`, errUndefinedUser},
		{servicedef.LoginPath, `{"email":"peter@klaven"}`, errMissingPassword},
		{servicedef.LoginPath, `{"email":"peter@klaven","password":"x"}`, errUserNotFound},
	}
	withAPI(t, Config{}, func(rc *httpclient.RequestContext) {
		for _, c := range cases {
			t.Run(c.path+" "+c.message, func(t *testing.T) {
				resp := fetch(t, rc, http.MethodPost, c.path, c.body)
				assert.Equal(t, http.StatusBadRequest, resp.Status)
				assert.JSONEq(t, `{"error":"`+c.message+`"}`, resp.Text())
			})
		}
	})
}

func TestAPIKey(t *testing.T) {
	withAPI(t, Config{APIKey: "secret"}, func(rc *httpclient.RequestContext) {
		resp := fetch(t, rc, http.MethodGet, servicedef.UsersPath, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
		assert.JSONEq(t, `{"error":"Missing API key"}`, resp.Text())

		headers := make(http.Header)
		headers.Set(httpclient.APIKeyHeader, "secret")
		resp, err := rc.Fetch(context.Background(), http.MethodGet, servicedef.UsersPath, httpclient.RequestOptions{Headers: headers})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)

		resp = fetch(t, rc, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusOK, resp.Status)
	})
}

func TestHomePage(t *testing.T) {
	withAPI(t, Config{}, func(rc *httpclient.RequestContext) {
		resp := fetch(t, rc, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, resp.Status)
		assert.True(t, strings.HasPrefix(resp.Headers.Get("Content-Type"), "text/html"))
		assert.Contains(t, resp.Text(), "<html>")
	})
}

func TestRequestsAreLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	withAPI(t, Config{Logger: logger}, func(rc *httpclient.RequestContext) {
		fetch(t, rc, http.MethodDelete, servicedef.UserPath("5"), nil)
	})
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.MethodDelete, entry.Data["method"])
	assert.Equal(t, "/api/users/5", entry.Data["path"])
	assert.Equal(t, http.StatusNoContent, entry.Data["status"])
	assert.NotEmpty(t, entry.Data["request_id"])
}
