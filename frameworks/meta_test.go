package frameworks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaLookup(t *testing.T) {
	meta := Meta{
		"n": float64(2),
		"env": map[string]interface{}{
			"node": map[string]interface{}{"version": "20.1"},
		},
		"shards": []interface{}{"a", "b"},
		"nested": Meta{"x": true},
	}

	tests := []struct {
		key   string
		want  interface{}
		found bool
	}{
		{"n", float64(2), true},
		{"env.node.version", "20.1", true},
		{"shards.1", "b", true},
		{"nested.x", true, true},
		{"shards.2", nil, false},
		{"shards.x", nil, false},
		{"env.node.version.major", nil, false},
		{"missing", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := meta.Lookup(tt.key)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	var empty Meta
	_, ok := empty.Lookup("n")
	assert.False(t, ok)
	assert.Equal(t, 5, empty.Get("n", 5))
}

func TestMetaDecode(t *testing.T) {
	meta := Meta{
		"n":    float64(12),
		"push": map[string]interface{}{"branch": "main", "commits": "3"},
	}

	var n int
	ok, err := meta.Decode("n", &n)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	var push struct {
		Branch  string
		Commits int
	}
	ok, err = meta.Decode("push", &push)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "main", push.Branch)
	assert.Equal(t, 3, push.Commits)

	ok, err = meta.Decode("missing", &n)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = meta.Decode("push", &n)
	assert.True(t, ok)
	assert.Error(t, err)
}
