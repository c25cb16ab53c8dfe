package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jesspatton/lazysuite/errors"
	"github.com/jesspatton/lazysuite/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
	"file": "/proj/test/math.spec.js",
	"testsLoaded": true,
	"meta": null,
	"console": null,
	"tests": [
		{"id": "adds", "name": "adds", "status": "passed", "stats": {"duration": 12}},
		{"id": "group", "name": "group", "tests": [
			{"id": "group/nested", "name": "nested", "status": "queued", "meta": {"n": 1}}
		]}
	]
}`

func TestGenerateResultSchema(t *testing.T) {
	data, err := GenerateResultSchema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "Suite result", schema["title"])

	defs, ok := schema["$defs"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, defs, "SuiteResult")
	assert.Contains(t, defs, "TestResult")
}

func TestDecode(t *testing.T) {
	result, err := Decode([]byte(validPayload))
	require.NoError(t, err)

	assert.Equal(t, "/proj/test/math.spec.js", result.File)
	assert.True(t, result.TestsLoaded)
	require.Len(t, result.Tests, 2)
	assert.Equal(t, status.Passed, result.Tests[0].Status)
	assert.Equal(t, 12.0, result.Tests[0].Stats.Duration)
	require.Len(t, result.Tests[1].Tests, 1)
	assert.Equal(t, "group/nested", result.Tests[1].Tests[0].ID)
}

func TestValidateRejects(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		payload string
	}{
		{name: "invalid json", payload: `{"file": `},
		{name: "missing file", payload: `{"tests": []}`},
		{name: "empty file", payload: `{"file": ""}`},
		{name: "missing test id", payload: `{"file": "a.js", "tests": [{"name": "adds"}]}`},
		{name: "unknown status", payload: `{"file": "a.js", "tests": [{"id": "a", "status": "exploded"}]}`},
		{name: "unknown nested status", payload: `{"file": "a.js", "tests": [{"id": "a", "tests": [{"id": "b", "status": "exploded"}]}]}`},
		{name: "meta not an object", payload: `{"file": "a.js", "meta": 3}`},
		{name: "duration not a number", payload: `{"file": "a.js", "tests": [{"id": "a", "stats": {"duration": "fast"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate([]byte(tt.payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeMalformedResult))
		})
	}
}

func TestValidateReportsViolations(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Validate([]byte(`{"file": "a.js", "tests": [{"id": "a", "status": "exploded"}]}`))
	lazyErr, ok := err.(*errors.LazyError)
	require.True(t, ok)

	violations, ok := lazyErr.Details["violations"].([]string)
	require.True(t, ok)
	assert.NotEmpty(t, violations)

	found := false
	for _, violation := range violations {
		if strings.HasPrefix(violation, "/tests/0/status") {
			found = true
		}
	}
	assert.True(t, found, violations)
}
