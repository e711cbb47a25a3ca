package usertests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
)

const expectedTotalUsers = 12

func DoAPITests(t *T) {
	data := t.env.data

	// The ID of a user created by one of the tests. It is deleted after all tests in the
	// suite have run.
	var createdUserID string
	t.Defer(func() {
		if createdUserID == "" {
			return
		}
		status, err := t.API().DeleteUser(t.Ctx(), createdUserID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, status)
	})

	t.Run("Get list users via API", func(t *T) {
		users, err := t.API().GetListUsers(t.Ctx(), 0)
		require.NoError(t, err)
		t.Debug("users: %+v", users)

		require.NotEmpty(t, users.Data)
		first := users.Data[0]
		expected := data.expectedUser
		assert.Equal(t, expected.Email, first.Email, "Email address is not correct, should be %s", expected.Email)
		assert.Equal(t, expectedTotalUsers, users.Total, "Total number of users is not correct, should be %d", expectedTotalUsers)
		assert.NotZero(t, first.ID)
		assert.Equal(t, expected.FirstName, first.FirstName, "First name is not correct, should be %s", expected.FirstName)
		assert.Equal(t, expected.LastName, first.LastName, "Last name is not correct, should be %s", expected.LastName)
		assert.Equal(t, expected.Avatar, first.Avatar, "Avatar is not correct, should be %s", expected.Avatar)
	})

	t.Run("Add new user via API", func(t *T) {
		newUser, err := t.API().PostUser(t.Ctx(), nil)
		require.NoError(t, err)
		t.Debug("created user: %+v", newUser)

		assert.True(t, newUser.Job.IsDefined(), "Job is not present")
		assert.NotEmpty(t, newUser.ID, "Id is not present")
		assert.NotEmpty(t, newUser.CreatedAt, "Created at is not present")
	})

	t.Run("Create, update and verify then delete user via API", func(t *T) {
		newUser := data.newUser
		created, err := t.API().PostUser(t.Ctx(), &newUser)
		require.NoError(t, err)
		require.NotEmpty(t, created.ID, "Created user should have id")
		createdUserID = created.ID

		update := servicedef.CreateUserRequest{Name: "Updated Name", Job: "Updated Job"}
		updated, err := t.API().PatchUser(t.Ctx(), createdUserID, update)
		require.NoError(t, err)
		require.True(t, updated.GetByKey("name").IsString(), "Updated response should have name")
		require.True(t, updated.GetByKey("job").IsString(), "Updated response should have job")
		assert.Equal(t, update.Name, updated.GetByKey("name").StringValue(), "Name should be updated")
		assert.Equal(t, update.Job, updated.GetByKey("job").StringValue(), "Job should be updated")
	})

	t.Run("Register and login using API", func(t *T) {
		registered, err := t.API().RegisterUser(t.Ctx(), data.credentials)
		require.NoError(t, err)
		assert.True(t, registered.Token.IsDefined(), "Register response should have token")
		assert.NotEmpty(t, registered.Token.StringValue())

		loggedIn, err := t.API().LoginUser(t.Ctx(), data.credentials)
		require.NoError(t, err)
		assert.True(t, loggedIn.Token.IsDefined(), "Login response should have token")
		assert.NotEmpty(t, loggedIn.Token.StringValue())
	})
}
