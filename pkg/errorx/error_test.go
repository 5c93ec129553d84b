package errorx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(InvalidTransition, "Quest %s is %s", "learning-1", "completed")
	require.Equal(t, "Quest learning-1 is completed", err.Error())
	require.Equal(t, InvalidTransition, err.Code)
}

func TestIs(t *testing.T) {
	err := New(Validation, "Username is required")
	require.True(t, Is(err, Validation))
	require.False(t, Is(err, NotFound))

	wrapped := fmt.Errorf("create profile: %w", err)
	require.True(t, Is(wrapped, Validation))

	require.False(t, Is(fmt.Errorf("plain"), Validation))
	require.False(t, Is(nil, Validation))
}
