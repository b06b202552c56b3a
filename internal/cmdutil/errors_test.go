package cmdutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagErrorf(t *testing.T) {
	err := FlagErrorf("unknown shell: %s", "fish")
	assert.Equal(t, "unknown shell: fish", err.Error())

	var flagErr *FlagError
	require.True(t, errors.As(err, &flagErr))
	assert.Equal(t, "unknown shell: fish", flagErr.Error())
}

func TestFlagErrorWrap(t *testing.T) {
	inner := fmt.Errorf("bad value")
	err := FlagErrorWrap(inner)
	assert.Equal(t, "bad value", err.Error())

	var flagErr *FlagError
	require.True(t, errors.As(err, &flagErr))
	assert.True(t, errors.Is(err, inner))
	assert.Equal(t, inner, flagErr.Unwrap())
}

func TestFlagError_WrappedFurther(t *testing.T) {
	err := fmt.Errorf("render: %w", FlagErrorf("nope"))

	var flagErr *FlagError
	assert.True(t, errors.As(err, &flagErr))
}
