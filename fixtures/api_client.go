// Package fixtures composes the building blocks that a test case uses: an API client bound
// to a transport handle, and the mocked user API installed on a page.
package fixtures

import (
	"context"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/yjuanrodriguez/pw-api-testing/httpclient"
	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
	"github.com/yjuanrodriguez/pw-api-testing/userapi"
)

// APIClient binds a transport handle to every user API operation. Errors are wrapped with
// the name of the operation that failed; the underlying error stays in the chain, so that
// errors.As can still find a *userapi.RequestFailedError.
type APIClient struct {
	requester httpclient.Requester
}

// NewAPIClient creates an APIClient that sends all of its requests through r.
func NewAPIClient(r httpclient.Requester) *APIClient {
	return &APIClient{requester: r}
}

func (c *APIClient) GetListUsers(ctx context.Context, page int) (servicedef.UsersListResponse, error) {
	ret, err := userapi.GetListUsers(ctx, c.requester, page)
	if err != nil {
		return ret, fmt.Errorf("failed to get list of users: %w", err)
	}
	return ret, nil
}

// PostUser creates a user. A nil userData means a random name and job.
func (c *APIClient) PostUser(ctx context.Context, userData *servicedef.CreateUserRequest) (servicedef.CreateUserResponse, error) {
	ret, err := userapi.PostUser(ctx, c.requester, userData)
	if err != nil {
		return ret, fmt.Errorf("failed to create user: %w", err)
	}
	return ret, nil
}

func (c *APIClient) PatchUser(ctx context.Context, id string, userData interface{}) (ldvalue.Value, error) {
	ret, err := userapi.PatchUser(ctx, c.requester, id, userData)
	if err != nil {
		return ret, fmt.Errorf("failed to patch user: %w", err)
	}
	return ret, nil
}

func (c *APIClient) DeleteUser(ctx context.Context, id string) (int, error) {
	status, err := userapi.DeleteUser(ctx, c.requester, id)
	if err != nil {
		return status, fmt.Errorf("failed to delete user: %w", err)
	}
	return status, nil
}

func (c *APIClient) RegisterUser(ctx context.Context, credentials servicedef.Credentials) (servicedef.AuthResponse, error) {
	ret, err := userapi.RegisterUser(ctx, c.requester, credentials)
	if err != nil {
		return ret, fmt.Errorf("failed to register user: %w", err)
	}
	return ret, nil
}

func (c *APIClient) LoginUser(ctx context.Context, credentials servicedef.Credentials) (servicedef.AuthResponse, error) {
	ret, err := userapi.LoginUser(ctx, c.requester, credentials)
	if err != nil {
		return ret, fmt.Errorf("failed to login user: %w", err)
	}
	return ret, nil
}
