package rlwe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeQualifiersMarksParametersSetAndBatching(t *testing.T) {
	p, err := NewParametersFromLiteral(toyBFVLiteral())
	require.Nil(t, err)

	q := ComputeQualifiers(p, SecurityNone)
	require.True(t, q.ParametersSet)
	require.True(t, q.UsingNTT)
	require.True(t, q.UsingFFT)
	require.True(t, q.UsingBatching)
	require.True(t, q.UsingDescendingModulusChain)
}

func TestComputeQualifiersDetectsAscendingChain(t *testing.T) {
	lit := toyBFVLiteral()
	lit.CoeffModulus = []uint64{97, 113}
	p, err := NewParametersFromLiteral(lit)
	require.Nil(t, err)

	q := ComputeQualifiers(p, SecurityNone)
	require.False(t, q.UsingDescendingModulusChain)
}

func TestComputeQualifiersRejectsCompositePlainModulusForBatching(t *testing.T) {
	lit := toyBFVLiteral()
	lit.PlainModulus = 33 // composite (3*11), yet (33-1)%16 == 0

	p, err := NewParametersFromLiteral(lit)
	require.Nil(t, err)

	q := ComputeQualifiers(p, SecurityNone)
	require.False(t, q.UsingBatching)
}

func TestMaxBitsForSecurityKnownLogN(t *testing.T) {
	bits, ok := MaxBitsForSecurity(12, Security128)
	require.True(t, ok)
	require.Equal(t, 109, bits)
}

func TestMaxBitsForSecurityUnknownLogN(t *testing.T) {
	_, ok := MaxBitsForSecurity(3, Security128)
	require.False(t, ok)
}

func TestMaxBitsForSecurityNoneIsAlwaysZeroAndOK(t *testing.T) {
	bits, ok := MaxBitsForSecurity(30, SecurityNone)
	require.True(t, ok)
	require.Equal(t, 0, bits)
}
