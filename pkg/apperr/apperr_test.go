package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := InvalidState("Order already completed")
	outer := fmt.Errorf("update order: %w", inner)

	assert.True(t, Is(outer, KindInvalidState))
	assert.Equal(t, "Order already completed", MessageOf(outer))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("image upload failed", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, KindUpstream, KindOf(err))
}

func TestMessageOfUnclassified(t *testing.T) {
	assert.Equal(t, "Server error", MessageOf(errors.New("pq: syntax error")))
}
