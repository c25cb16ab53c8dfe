package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLazyError(t *testing.T) {
	err := New(ErrCodeMalformedResult, "missing file")
	assert.Equal(t, ErrCodeMalformedResult, err.Code)
	assert.Equal(t, "MALFORMED_RESULT: missing file", err.Error())

	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeBloomFailed, "bloom failed")
	assert.Equal(t, cause, wrapped.Unwrap())
	assert.True(t, Is(wrapped, ErrCodeBloomFailed))
	assert.False(t, Is(wrapped, ErrCodeMalformedResult))

	detailed := err.WithDetail("file", "/a.spec.js").WithDetail("index", 2)
	assert.Equal(t, "/a.spec.js", detailed.Details["file"])
	assert.Equal(t, 2, detailed.Details["index"])
}

func TestIsWalksCauses(t *testing.T) {
	err := BloomFailed(UnknownStatus("exploded"))

	assert.True(t, Is(err, ErrCodeBloomFailed))
	assert.True(t, Is(err, ErrCodeUnknownStatus))
	assert.Equal(t, ErrCodeBloomFailed, GetCode(err))

	outer := fmt.Errorf("debrief: %w", err)
	assert.True(t, Is(outer, ErrCodeUnknownStatus))
	assert.Equal(t, ErrCodeBloomFailed, GetCode(outer))

	assert.False(t, Is(nil, ErrCodeInternal))
	assert.Equal(t, ErrorCode(""), GetCode(fmt.Errorf("plain")))
}

func TestErrorConstructors(t *testing.T) {
	err := UnknownStatus("exploded")
	assert.Equal(t, ErrCodeUnknownStatus, err.Code)
	assert.Equal(t, "exploded", err.Details["status"])

	err = ConfigNotFound("/tmp/.lazysuite.yml")
	assert.Equal(t, ErrCodeConfigNotFound, err.Code)
	assert.Equal(t, "/tmp/.lazysuite.yml", err.Details["path"])

	err = ConfigInvalid("/tmp/.lazysuite.json", fmt.Errorf("bad json"))
	assert.Equal(t, ErrCodeConfigInvalid, err.Code)
	assert.Contains(t, err.Error(), "bad json")
}
