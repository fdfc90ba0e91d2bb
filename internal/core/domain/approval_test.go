package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	t.Run("pending accepts approve", func(t *testing.T) {
		next, changed, err := Transition(StatusPending, ActionApprove)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, StatusApproved, next)
	})

	t.Run("pending accepts reject", func(t *testing.T) {
		next, changed, err := Transition(StatusPending, ActionReject)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, StatusRejected, next)
	})

	t.Run("re-applying the same decision is a no-op", func(t *testing.T) {
		next, changed, err := Transition(StatusApproved, ActionApprove)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, StatusApproved, next)

		next, changed, err = Transition(StatusRejected, ActionReject)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, StatusRejected, next)
	})

	t.Run("flipping a decided record conflicts", func(t *testing.T) {
		_, _, err := Transition(StatusApproved, ActionReject)
		assert.ErrorIs(t, err, ErrConflict)

		_, _, err = Transition(StatusRejected, ActionApprove)
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestParseDecisionAction(t *testing.T) {
	action, err := ParseDecisionAction("approve")
	require.NoError(t, err)
	assert.Equal(t, ActionApprove, action)

	action, err = ParseDecisionAction("reject")
	require.NoError(t, err)
	assert.Equal(t, ActionReject, action)

	_, err = ParseDecisionAction("maybe")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseDecisionAction("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApprovalStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}
