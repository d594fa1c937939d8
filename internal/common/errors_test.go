package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserErrorMessage(t *testing.T) {
	err := NewUserError("amount must be positive", ErrInvalidAmount)
	assert.Equal(t, "amount must be positive: invalid amount", err.Error())
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := NewUserError("something went wrong", nil)
	assert.Equal(t, "something went wrong", err.Error())

	var ue *UserError
	require.True(t, errors.As(err, &ue))
	assert.NoError(t, ue.Unwrap())
}
