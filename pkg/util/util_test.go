package util

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseGDoesNotMutateInput(t *testing.T) {
	in := []int{1, 2, 3}
	out := ReverseG(in)

	assert.Equal(t, []int{1, 2, 3}, in)
	assert.Equal(t, []int{3, 2, 1}, out)
}

func TestStopConcurrentOperation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.False(t, StopConcurrentOperation(ctx))
	cancel()
	assert.True(t, StopConcurrentOperation(ctx))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 2, Max(1, 2))
	assert.Equal(t, 2, Max(2, 1))
}

func TestWrapErrorfCarriesCodeAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := WrapErrorf(cause, ErrInvalidCoordinate, "query failed: %s", "bad input")

	var wrapped *Error
	require := assert.New(t)
	require.ErrorAs(err, &wrapped)
	require.Equal(ErrInvalidCoordinate, wrapped.Code())
	require.Equal(cause, errors.Unwrap(err))
	require.Equal("query failed: bad input", err.Error())
}
