package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatching(t *testing.T) {
	wrapped := fmt.Errorf("redeem: %w", ErrInvitationExpired)
	assert.ErrorIs(t, wrapped, ErrInvitationExpired)
	assert.NotErrorIs(t, wrapped, ErrInvitationExhausted)
	assert.Equal(t, KindConflict, KindOf(wrapped))

	cause := errors.New("disk full")
	internal := Internal("create team", cause)
	assert.ErrorIs(t, internal, cause)
	assert.Equal(t, KindInternal, KindOf(internal))
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Contains(t, internal.Error(), "disk full")
}
