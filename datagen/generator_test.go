package datagen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUser(t *testing.T) {
	for i := 0; i < 200; i++ {
		u := GenerateUser()
		assert.GreaterOrEqual(t, u.ID, 1)
		assert.LessOrEqual(t, u.ID, 1000)
		assert.NotEmpty(t, u.FirstName)
		assert.NotEmpty(t, u.LastName)
		assert.Contains(t, u.Email, "@")
		assert.Equal(t, 1, strings.Count(u.Email, "@"), u.Email)
		assert.True(t, strings.HasPrefix(u.Avatar, "https://"), u.Avatar)
	}
}

func TestGenerateNewUser(t *testing.T) {
	u := GenerateNewUser()
	assert.NotEmpty(t, u.Name)
	assert.NotEmpty(t, u.Job)
}

func TestGeneratedUsersVary(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		seen[GenerateUser().Email] = true
	}
	require.Greater(t, len(seen), 1)
}
