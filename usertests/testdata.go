package usertests

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
)

//go:embed testdata/*.json
var testDataFiles embed.FS

type testData struct {
	expectedUser servicedef.User
	newUser      servicedef.CreateUserRequest
	credentials  servicedef.Credentials
}

func loadTestData() (testData, error) {
	var data testData
	files := map[string]interface{}{
		"testdata/expected_user.json": &data.expectedUser,
		"testdata/new_user.json":      &data.newUser,
		"testdata/credentials.json":   &data.credentials,
	}
	for name, target := range files {
		bytes, err := testDataFiles.ReadFile(name)
		if err != nil {
			return data, err
		}
		if err := json.Unmarshal(bytes, target); err != nil {
			return data, fmt.Errorf("malformed test data in %s: %w", name, err)
		}
	}
	return data, nil
}
