package config

import (
	"testing"

	"github.com/frpsgo/frps/errs"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c := New()
	require.Equal(t, DefaultMaxStackDepth, c.MaxStackDepth)
	require.Equal(t, DefaultMaxBulkLength, c.MaxBulkLength)
	require.NoError(t, c.Validate())
}

func TestNew_Options(t *testing.T) {
	c := New(WithMaxStackDepth(8), WithMaxBulkLength(1024))
	require.Equal(t, uint32(8), c.MaxStackDepth)
	require.Equal(t, uint32(1024), c.MaxBulkLength)
}

func TestValidate_RejectsZeroStackDepth(t *testing.T) {
	c := New(WithMaxStackDepth(0))
	err := c.Validate()
	require.ErrorIs(t, err, errs.ErrRecursionLimit)
}

func TestValidate_RejectsZeroOrOversizedBulkLength(t *testing.T) {
	require.ErrorIs(t, New(WithMaxBulkLength(0)).Validate(), errs.ErrTooLargeArray)
	require.ErrorIs(t, New(WithMaxBulkLength(1<<31)).Validate(), errs.ErrTooLargeArray)
}
