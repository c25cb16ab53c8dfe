package status

import (
	"testing"

	"github.com/jesspatton/lazysuite/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		components []Status
		want       Status
	}{
		{"no components", nil, Empty},
		{"single idle", []Status{Idle}, Idle},
		{"empty ignored", []Status{Empty, Idle}, Idle},
		{"single empty is partial", []Status{Empty}, Partial},
		{"only empty is partial", []Status{Empty, Empty}, Partial},
		{"duplicates collapse", []Status{Passed, Passed, Passed}, Passed},
		{"failed wins", []Status{Failed, Passed}, Failed},
		{"failed over warning", []Status{Warning, Failed, Incomplete}, Failed},
		{"warning wins", []Status{Warning, Passed}, Warning},
		{"warning over incomplete", []Status{Incomplete, Warning}, Warning},
		{"incomplete wins", []Status{Incomplete, Passed}, Incomplete},
		{"queued mix is running", []Status{Queued, Passed}, Running},
		{"queued mix with empty", []Status{Queued, Empty, Skipped}, Running},
		{"mixed settled is partial", []Status{Passed, Skipped}, Partial},
		{"running and passed is partial", []Status{Running, Passed}, Partial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.components)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIgnoresOrderAndDuplication(t *testing.T) {
	base := []Status{Passed, Skipped, Queued}
	variants := [][]Status{
		{Queued, Skipped, Passed},
		{Skipped, Passed, Queued, Passed, Empty},
		{Passed, Passed, Queued, Queued, Skipped, Skipped},
	}

	want, err := Parse(base)
	require.NoError(t, err)
	for _, v := range variants {
		got, err := Parse(v)
		require.NoError(t, err)
		assert.Equal(t, want, got, "components %v", v)
	}
}

func TestParseUnknownStatus(t *testing.T) {
	_, err := Parse([]Status{Passed, "exploded"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownStatus))

	// A lone unknown value is rejected, not passed through.
	_, err = Parse([]Status{"exploded"})
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownStatus))
}

func TestParseFramework(t *testing.T) {
	tests := []struct {
		name       string
		components []FrameworkStatus
		want       FrameworkStatus
	}{
		{"no components", nil, Empty.Framework()},
		{"single refreshing", []FrameworkStatus{Refreshing}, Refreshing},
		{"running over error", []FrameworkStatus{Running.Framework(), Errored}, Running.Framework()},
		{"error over refreshing", []FrameworkStatus{Errored, Refreshing}, Errored},
		{"refreshing over failed", []FrameworkStatus{Refreshing, Failed.Framework()}, Refreshing},
		{"delegates to parse", []FrameworkStatus{Passed.Framework(), Failed.Framework()}, Failed.Framework()},
		{"delegated empty ignored", []FrameworkStatus{Empty.Framework(), Idle.Framework()}, Idle.Framework()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFramework(tt.components)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFramework([]FrameworkStatus{"exploded", Errored})
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownStatus))
}

func TestSettled(t *testing.T) {
	assert.True(t, Passed.Settled())
	assert.True(t, Partial.Settled())
	assert.False(t, Idle.Settled())
	assert.False(t, Queued.Settled())
	assert.False(t, Running.Settled())
	assert.False(t, Empty.Settled())
}

func TestAll(t *testing.T) {
	statuses := All()
	assert.Len(t, statuses, 10)
	for _, s := range statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("refreshing").Valid())

	statuses[0] = "mutated"
	assert.Equal(t, Queued, All()[0])
}
