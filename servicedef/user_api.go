// Package servicedef defines the wire format of the user API: the paths it serves and the
// JSON bodies it accepts and returns.
package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	UsersPath    = "/api/users"
	RegisterPath = "/api/register"
	LoginPath    = "/api/login"

	// PageParam is the query parameter that selects a page of the user list.
	PageParam = "page"
	// PerPageParam is the query parameter that sets the page size of the user list.
	PerPageParam = "per_page"
)

// UserPath returns the path of a single user resource.
func UserPath(id string) string {
	return UsersPath + "/" + id
}

// User is a user record as returned by the list endpoint and fabricated by the mock.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// UsersListResponse is the pagination envelope of the list endpoint.
type UsersListResponse struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Data       []User `json:"data"`
}

// CreateUserRequest is the body of a create request. Both fields are optional.
type CreateUserRequest struct {
	Name string `json:"name,omitempty"`
	Job  string `json:"job,omitempty"`
}

// CreateUserResponse is the body returned by the create endpoint. Unlike User.ID, the
// server-assigned ID is a string.
type CreateUserResponse struct {
	ID        string                 `json:"id"`
	Name      ldvalue.OptionalString `json:"name"`
	Job       ldvalue.OptionalString `json:"job"`
	CreatedAt string                 `json:"createdAt"`
}

// Credentials is the body of a register or login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body returned by the register and login endpoints. Which fields are
// present depends on whether the call succeeded. The register endpoint returns a numeric ID.
type AuthResponse struct {
	ID    ldvalue.Value          `json:"id"`
	Token ldvalue.OptionalString `json:"token"`
	Error ldvalue.OptionalString `json:"error"`
}
