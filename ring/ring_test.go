package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func toyModuli() []uint64 { return []uint64{113, 97} }

func TestNewRingBuildsOneSubRingPerModulus(t *testing.T) {
	r, err := NewRing(8, toyModuli())
	require.Nil(t, err)
	require.Equal(t, 8, r.N())
	require.Equal(t, 3, r.LogN())
	require.Equal(t, 1, r.Level())
	require.Equal(t, toyModuli(), r.ModuliChain())
}

func TestNewRingRejectsNonPowerOfTwoDegree(t *testing.T) {
	_, err := NewRing(7, toyModuli())
	require.NotNil(t, err)
}

func TestNewRingRejectsEmptyModuli(t *testing.T) {
	_, err := NewRing(8, nil)
	require.NotNil(t, err)
}

func TestNewRingRejectsDuplicateModulus(t *testing.T) {
	_, err := NewRing(8, []uint64{113, 113})
	require.NotNil(t, err)
}

func TestNewRingRejectsNonNTTAdmissibleModulus(t *testing.T) {
	// 3 is prime but 3-1=2 is not divisible by 2N=16.
	_, err := NewRing(8, []uint64{3})
	require.NotNil(t, err)
}

func TestAtLevelSharesUnderlyingSubRings(t *testing.T) {
	r, err := NewRing(8, toyModuli())
	require.Nil(t, err)

	sub := r.AtLevel(0)
	require.Equal(t, 0, sub.Level())
	require.Same(t, r.SubRings()[0], sub.SubRings()[0])
}

func TestAtLevelPanicsOutOfRange(t *testing.T) {
	r, err := NewRing(8, toyModuli())
	require.Nil(t, err)
	require.Panics(t, func() { r.AtLevel(5) })
	require.Panics(t, func() { r.AtLevel(-1) })
}

func TestRingNTTRoundTrip(t *testing.T) {
	r, err := NewRing(8, toyModuli())
	require.Nil(t, err)

	p := r.NewPoly()
	for i := range p.Coeffs[0] {
		p.Coeffs[0][i] = uint64(i + 1)
		p.Coeffs[1][i] = uint64(2*i + 3)
	}
	orig := p.CopyNew()

	freq := r.NewPoly()
	r.NTT(p, freq)
	back := r.NewPoly()
	r.INTT(freq, back)

	require.True(t, orig.Equal(back))
}

func TestRingAddSubAreInverses(t *testing.T) {
	r, err := NewRing(8, toyModuli())
	require.Nil(t, err)

	a, b := r.NewPoly(), r.NewPoly()
	for i := range a.Coeffs[0] {
		a.Coeffs[0][i] = uint64(i)
		b.Coeffs[0][i] = uint64(2 * i)
	}

	sum := r.NewPoly()
	r.Add(a, b, sum)
	diff := r.NewPoly()
	r.Sub(sum, b, diff)

	require.True(t, a.Equal(diff))
}

func TestRingMulCoeffsIsNTTDomainMultiplication(t *testing.T) {
	r, err := NewRing(8, toyModuli())
	require.Nil(t, err)

	a, b := r.NewPoly(), r.NewPoly()
	a.Coeffs[0][0], a.Coeffs[1][0] = 3, 3
	b.Coeffs[0][0], b.Coeffs[1][0] = 5, 5

	out := r.NewPoly()
	r.MulCoeffs(a, b, out)
	require.Equal(t, uint64(15), out.Coeffs[0][0])
	require.Equal(t, uint64(15), out.Coeffs[1][0])
}
