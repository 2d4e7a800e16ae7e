package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntMulAndCmp(t *testing.T) {
	a := NewUint(6)
	b := NewUint(7)
	product := a.Mul(b)
	require.Equal(t, "42", product.String())
	require.Equal(t, 0, product.Cmp(NewUint(42)))
	require.Equal(t, -1, a.Cmp(b))
	require.Equal(t, 1, b.Cmp(a))
}

func TestIntLimbsRoundTrip(t *testing.T) {
	limbs := []uint64{0xDEADBEEF, 1}
	v := NewFromLimbs(limbs)
	require.Equal(t, limbs, v.Limbs(2))
}

func TestIntIsPrime(t *testing.T) {
	require.True(t, NewUint(97).IsPrime(20))
	require.False(t, NewUint(100).IsPrime(20))
}

func TestRandBelowStaysInRange(t *testing.T) {
	max := NewUint(1000)
	for i := 0; i < 32; i++ {
		v := RandBelow(max)
		require.Equal(t, -1, v.Cmp(max))
	}
}
