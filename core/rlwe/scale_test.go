package rlwe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScaleArithmetic(t *testing.T) {
	a := NewScale(2)
	b := NewScale(4)

	require.True(t, a.Mul(b).Equal(NewScale(8)))
	require.True(t, b.Div(a).Equal(NewScale(2)))
	require.False(t, a.Equal(b))
}
