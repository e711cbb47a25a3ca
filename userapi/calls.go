// Package userapi contains one function per user API operation. Each one issues a single
// request through a transport handle, checks the status, and decodes the JSON response.
// There are no retries.
package userapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/yjuanrodriguez/pw-api-testing/datagen"
	"github.com/yjuanrodriguez/pw-api-testing/httpclient"
	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
)

// DefaultPage is the page that GetListUsers asks for if none is specified.
const DefaultPage = 2

func jsonHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	return h
}

// GetListUsers fetches one page of the user list. A page of zero or less means DefaultPage.
func GetListUsers(ctx context.Context, r httpclient.Requester, page int) (servicedef.UsersListResponse, error) {
	if page <= 0 {
		page = DefaultPage
	}
	var ret servicedef.UsersListResponse
	err := doJSON(ctx, r, http.MethodGet, servicedef.UsersPath, httpclient.RequestOptions{
		Params:  url.Values{servicedef.PageParam: {strconv.Itoa(page)}},
		Headers: jsonHeaders(),
	}, &ret)
	return ret, err
}

// PostUser creates a user. If userData is nil, a random name and job are sent.
func PostUser(ctx context.Context, r httpclient.Requester, userData *servicedef.CreateUserRequest) (servicedef.CreateUserResponse, error) {
	newUser := datagen.GenerateNewUser()
	if userData != nil {
		newUser = *userData
	}
	var ret servicedef.CreateUserResponse
	err := doJSON(ctx, r, http.MethodPost, servicedef.UsersPath, httpclient.RequestOptions{
		Data:    newUser,
		Headers: jsonHeaders(),
	}, &ret)
	return ret, err
}

// PatchUser sends a partial update for a user and returns whatever JSON the API answers with.
func PatchUser(ctx context.Context, r httpclient.Requester, id string, userData interface{}) (ldvalue.Value, error) {
	var ret ldvalue.Value
	err := doJSON(ctx, r, http.MethodPatch, servicedef.UserPath(id), httpclient.RequestOptions{
		Data:    userData,
		Headers: jsonHeaders(),
	}, &ret)
	return ret, err
}

// DeleteUser deletes a user and returns the response status, which is 204 on success.
func DeleteUser(ctx context.Context, r httpclient.Requester, id string) (int, error) {
	resp, err := r.Fetch(ctx, http.MethodDelete, servicedef.UserPath(id), httpclient.RequestOptions{})
	if err != nil {
		return 0, err
	}
	if !resp.OK() && resp.Status != http.StatusNoContent {
		return resp.Status, &RequestFailedError{Status: resp.Status, StatusText: resp.StatusText}
	}
	return resp.Status, nil
}

// RegisterUser registers a user. On success the response contains a token.
func RegisterUser(ctx context.Context, r httpclient.Requester, credentials servicedef.Credentials) (servicedef.AuthResponse, error) {
	return postCredentials(ctx, r, servicedef.RegisterPath, credentials)
}

// LoginUser logs a user in. On success the response contains a token.
func LoginUser(ctx context.Context, r httpclient.Requester, credentials servicedef.Credentials) (servicedef.AuthResponse, error) {
	return postCredentials(ctx, r, servicedef.LoginPath, credentials)
}

func postCredentials(ctx context.Context, r httpclient.Requester, path string, credentials servicedef.Credentials) (servicedef.AuthResponse, error) {
	var ret servicedef.AuthResponse
	err := doJSON(ctx, r, http.MethodPost, path, httpclient.RequestOptions{
		Data:    credentials,
		Headers: jsonHeaders(),
	}, &ret)
	return ret, err
}

func doJSON(
	ctx context.Context,
	r httpclient.Requester,
	method, path string,
	opts httpclient.RequestOptions,
	target interface{},
) error {
	resp, err := r.Fetch(ctx, method, path, opts)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &RequestFailedError{Status: resp.Status, StatusText: resp.StatusText}
	}
	return resp.JSON(target)
}
