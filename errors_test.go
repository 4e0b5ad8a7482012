package chaff_test

import (
	"errors"
	"testing"

	"github.com/chaffhq/chaff"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode_returns_code_for_application_errors(t *testing.T) {
	t.Parallel()

	err := chaff.Errorf(chaff.EINVALID, "seed URL required")
	assert.Equal(t, chaff.EINVALID, chaff.ErrorCode(err))
	assert.Equal(t, "seed URL required", chaff.ErrorMessage(err))
}

func TestErrorCode_returns_internal_for_unknown_errors(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	assert.Equal(t, chaff.EINTERNAL, chaff.ErrorCode(err))
	assert.Equal(t, "Internal error.", chaff.ErrorMessage(err))
}

func TestErrorCode_empty_for_nil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", chaff.ErrorCode(nil))
	assert.Equal(t, "", chaff.ErrorMessage(nil))
}
