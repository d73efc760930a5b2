package assert

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Assert is a wrapper around assert.Assertions and testing.T
type Assert struct {
	*assert.Assertions
	T *testing.T
}

// New creates a new Assert object
func New(t *testing.T) *Assert {
	return &Assert{
		Assertions: assert.New(t),
		T:          t,
	}
}

// EqualToJSONFixture marshals the result to indented JSON and compares it with
// fixtures/<TestName>_<fixtureName>.json.
// If GEN_FIXTURE=true is set, it writes the marshaled result to the fixture file and passes the test.
func (a *Assert) EqualToJSONFixture(fixtureName string, result any) {
	resultJSON, err := json.MarshalIndent(result, "", "  ")
	a.NoError(err, "Failed to marshal result to JSON")

	a.equalToFixture(fixtureName, ".json", string(resultJSON))
}

// EqualToTextFixture compares text output with fixtures/<TestName>_<fixtureName>.txt.
// Subtest names are flattened so that a fixture is always a single file.
func (a *Assert) EqualToTextFixture(fixtureName string, result string) {
	a.equalToFixture(fixtureName, ".txt", result)
}

func (a *Assert) equalToFixture(fixtureName, ext, result string) {
	testName := strings.ReplaceAll(a.T.Name(), "/", "_")
	fixturePath := filepath.Join("fixtures", fmt.Sprintf("%s_%s%s", testName, fixtureName, ext))

	if os.Getenv("GEN_FIXTURE") == "true" {
		err := os.MkdirAll(filepath.Dir(fixturePath), 0755)
		a.NoError(err, "Failed to create fixture directory")
		err = os.WriteFile(fixturePath, []byte(result), 0644)
		a.NoError(err, "Failed to write fixture file")
		return
	}

	expected, err := os.ReadFile(fixturePath)
	if !a.NoError(err, "Failed to read fixture file %s", fixturePath) {
		return
	}

	a.Equal(string(expected), result, "Result does not match fixture %s", fixturePath)
}
