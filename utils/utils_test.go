package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	first, err := GenerateCode(6)
	require.NoError(t, err)
	second, err := GenerateCode(6)
	require.NoError(t, err)

	// 6 bytes hex-encode to 12 uppercase characters.
	assert.Len(t, first, 12)
	assert.Regexp(t, "^[0-9A-F]{12}$", first)
	assert.NotEqual(t, first, second)
}

func TestCircuitBreaker_ClosedPassesThrough(t *testing.T) {
	cb := NewCircuitBreaker("test")

	result, err := cb.Execute(context.Background(), func() (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestCircuitBreaker_PropagatesErrors(t *testing.T) {
	cb := NewCircuitBreaker("test")
	boom := errors.New("boom")

	_, err := cb.Execute(context.Background(), func() (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	// A handful of failures below the trip threshold keeps it closed.
	result, err := cb.Execute(context.Background(), func() (any, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}
