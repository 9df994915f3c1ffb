package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_New_WrappedError_MatchesKindAndItself(t *testing.T) {
	errMemberNotFound := NotFound("user is not a member of this project")
	wrapped := fmt.Errorf("failed to change role: %w", errMemberNotFound)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.True(t, errors.Is(wrapped, errMemberNotFound))
	assert.False(t, errors.Is(wrapped, ErrForbidden))
	assert.Equal(t, "user is not a member of this project", errMemberNotFound.Error())
}

func Test_New_TwoErrorsWithSameMessage_AreDistinct(t *testing.T) {
	first := Forbidden("insufficient permissions")
	second := Forbidden("insufficient permissions")

	assert.False(t, errors.Is(first, second))
	assert.True(t, errors.Is(second, ErrForbidden))
}
