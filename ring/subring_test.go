package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSubRingRejectsNonPowerOfTwoDegree(t *testing.T) {
	_, err := NewSubRing(7, 97)
	require.NotNil(t, err)
}

func TestGenNTTTableRejectsNonPrimeModulus(t *testing.T) {
	s, err := NewSubRing(8, 100)
	require.Nil(t, err)
	require.NotNil(t, s.GenNTTTable(16))
}

func TestGenNTTTableRejectsIncompatibleRoot(t *testing.T) {
	s, err := NewSubRing(8, 97)
	require.Nil(t, err)
	// 97-1=96 is not divisible by 1000.
	require.NotNil(t, s.GenNTTTable(1000))
}

func TestGenNTTTablePopulatesTwiddleTables(t *testing.T) {
	s, err := NewSubRing(8, 97)
	require.Nil(t, err)
	require.Nil(t, s.GenNTTTable(16))

	require.Len(t, s.RootsForward, 8)
	require.Len(t, s.RootsBackward, 8)
	require.True(t, CheckPrimitiveRoot(s.PrimitiveRoot, 97, 16))
}

func TestGenNTTTableAcceptsPresetPrimitiveRoot(t *testing.T) {
	s1, err := NewSubRing(8, 97)
	require.Nil(t, err)
	require.Nil(t, s1.GenNTTTable(16))

	s2, err := NewSubRing(8, 97)
	require.Nil(t, err)
	s2.PrimitiveRoot = s1.PrimitiveRoot
	s2.Factors = s1.Factors
	require.Nil(t, s2.GenNTTTable(16))
	require.Equal(t, s1.RootsForward, s2.RootsForward)
}
