// Package datagen produces random user records for mocked responses and for create
// requests. Values are not reproducible between calls.
package datagen

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
)

const (
	minUserID = 1
	maxUserID = 1000

	avatarURLFormat = "https://avatars.githubusercontent.com/u/%d"
	maxAvatarID     = 100000000
)

// GenerateUser returns a user with an ID in [1,1000], random names, a valid email address
// and an https avatar URL.
func GenerateUser() servicedef.User {
	return servicedef.User{
		ID:        GenerateID(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Avatar:    fmt.Sprintf(avatarURLFormat, gofakeit.Number(1, maxAvatarID)),
	}
}

// GenerateID returns a random user ID in [1,1000].
func GenerateID() int {
	return gofakeit.Number(minUserID, maxUserID)
}

// GenerateNewUser returns a create request with a random first name and job title.
func GenerateNewUser() servicedef.CreateUserRequest {
	return servicedef.CreateUserRequest{
		Name: gofakeit.FirstName(),
		Job:  gofakeit.JobTitle(),
	}
}
