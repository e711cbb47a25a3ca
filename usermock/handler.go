// Package usermock fabricates responses for the user collection path. It is meant to be
// installed as an interception rule, so that requests a page makes to that path are answered
// in-process with random data instead of reaching the real API.
package usermock

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/yjuanrodriguez/pw-api-testing/datagen"
	"github.com/yjuanrodriguez/pw-api-testing/framework"
	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
)

// AllowedMethods lists the methods that the mock answers.
var AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}

type mockUserAPI struct {
	logger framework.Logger
}

// NewHandler returns a handler for servicedef.UsersPath:
//
//   - GET returns a random user with status 200.
//   - POST returns the fields of the JSON request body plus a random numeric "id", with
//     status 201. A field named "id" in the request body takes precedence.
//   - PATCH returns a random user with the fields of the JSON request body merged over it,
//     with status 200.
//   - DELETE returns status 204 with an empty body.
//   - Any other method gets status 405.
//
// Requests for any other path get status 404.
func NewHandler(logger framework.Logger) http.Handler {
	if logger == nil {
		logger = framework.NullLogger()
	}
	m := &mockUserAPI{logger: logger}
	return httphelpers.HandlerForPath(servicedef.UsersPath, http.HandlerFunc(m.serveHTTP), nil)
}

func (m *mockUserAPI) serveHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		user := datagen.GenerateUser()
		m.logger.Printf("generated user: %+v", user)
		writeJSON(w, http.StatusOK, user)

	case http.MethodPost:
		requestBody := readJSONObject(req)
		m.logger.Printf("request body: %s", requestBody.JSONString())
		mocked := mergeObjects(ldvalue.ObjectBuild().Set("id", ldvalue.Int(datagen.GenerateID())).Build(), requestBody)
		m.logger.Printf("mocked post json: %s", mocked.JSONString())
		writeJSON(w, http.StatusCreated, mocked)

	case http.MethodPatch:
		requestBody := readJSONObject(req)
		baseUser := ldvalue.Parse(mustMarshal(datagen.GenerateUser()))
		updated := mergeObjects(baseUser, requestBody)
		m.logger.Printf("mocked patch json: %s", updated.JSONString())
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		m.logger.Printf("mocked delete on %s", servicedef.UsersPath)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNoContent)

	default:
		m.logger.Printf("method %s is not mocked on %s", req.Method, servicedef.UsersPath)
		w.Header().Set("Allow", strings.Join(AllowedMethods, ", "))
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// readJSONObject returns the request body if it is a JSON object, or an empty object.
func readJSONObject(req *http.Request) ldvalue.Value {
	if req.Body == nil {
		return ldvalue.ObjectBuild().Build()
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return ldvalue.ObjectBuild().Build()
	}
	value := ldvalue.Parse(data)
	if value.Type() != ldvalue.ObjectType {
		return ldvalue.ObjectBuild().Build()
	}
	return value
}

// mergeObjects copies the properties of base and then of overrides into a new object, so
// that overrides wins for keys present in both.
func mergeObjects(base, overrides ldvalue.Value) ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for _, k := range base.Keys() {
		b.Set(k, base.GetByKey(k))
	}
	for _, k := range overrides.Keys() {
		b.Set(k, overrides.GetByKey(k))
	}
	return b.Build()
}

func mustMarshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(mustMarshal(body))
}
