package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPrime(t *testing.T) {
	require.True(t, IsPrime(97))
	require.True(t, IsPrime(2))
	require.False(t, IsPrime(1))
	require.False(t, IsPrime(0))
	require.False(t, IsPrime(100))
}

func TestNextPrimeFindsCongruentPrime(t *testing.T) {
	// 2N = 16; 113 = 7*16+1 is prime and congruent to 1 mod 16.
	p, ok := NextPrime(7, 16, 127)
	require.True(t, ok)
	require.True(t, IsPrime(p))
	require.Equal(t, uint64(0), (p-1)%16)
}

func TestNextPrimeRejectsNonPowerOfTwoModulus(t *testing.T) {
	_, ok := NextPrime(7, 15, 127)
	require.False(t, ok)
}

func TestGeneratePrimesReturnsDistinctDescendingForEqualSizes(t *testing.T) {
	primes, err := GeneratePrimes(8, []int{10, 10, 10})
	require.Nil(t, err)
	require.Len(t, primes, 3)
	for _, p := range primes {
		require.True(t, IsPrime(p))
		require.Equal(t, uint64(0), (p-1)%16)
	}
	require.True(t, primes[0] > primes[1])
	require.True(t, primes[1] > primes[2])
}

func TestGeneratePrimesRejectsBadDegree(t *testing.T) {
	_, err := GeneratePrimes(7, []int{10})
	require.NotNil(t, err)
}

func TestGeneratePrimesRejectsOutOfRangeBitSize(t *testing.T) {
	_, err := GeneratePrimes(8, []int{1})
	require.NotNil(t, err)
	_, err = GeneratePrimes(8, []int{100})
	require.NotNil(t, err)
}

func TestPrimitiveRootAndCheckPrimitiveRoot(t *testing.T) {
	// 97-1 = 96 = 2N for N=48? pick N small: use q=97, 2N=32 (97-1=96=32*3).
	root, _, err := PrimitiveRoot(97, 32)
	require.Nil(t, err)
	require.True(t, CheckPrimitiveRoot(root, 97, 32))
}

func TestPrimitiveRootRejectsNonPrimeModulus(t *testing.T) {
	_, _, err := PrimitiveRoot(100, 32)
	require.NotNil(t, err)
}

func TestPrimitiveRootRejectsIncompatibleOrder(t *testing.T) {
	_, _, err := PrimitiveRoot(97, 5)
	require.NotNil(t, err)
}

func TestRandUint64BelowStaysInRange(t *testing.T) {
	for i := 0; i < 256; i++ {
		v := RandUint64Below(97)
		require.Less(t, v, uint64(97))
	}
	require.Equal(t, uint64(0), RandUint64Below(0))
}
