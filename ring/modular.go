package ring

import (
	"math/bits"

	"github.com/latticecore/engine/cryptoerr"
)

// MaxModuliSize is the largest admissible bit-length for a coefficient
// modulus prime, so that a 128-bit accumulator can hold the product of two
// residues plus carry during Barrett and Montgomery reduction.
const MaxModuliSize = 61

// MaxModuliCount bounds the number of primes in a coeff_modulus, matching
// the chain's own depth ceiling.
const MaxModuliCount = 62

// BRedParams precomputes the Barrett ratio ⌊2^128/q⌋ split into its high
// and low 64-bit words (params[0] = hi, params[1] = lo), the const_ratio
// pair named in the data model. q must be a nonzero prime below 2^62.
func BRedParams(q uint64) (params []uint64, err *cryptoerr.Error) {
	if q == 0 || q == 1 {
		return nil, cryptoerr.Argument("modulus must not be 0 or 1")
	}
	if bits.Len64(q) > MaxModuliSize+1 {
		return nil, cryptoerr.Argument("modulus %d exceeds %d bits", q, MaxModuliSize+1)
	}

	// ⌊2^128/q⌋ computed by long division on two 64-bit limbs: first
	// ⌊2^64/q⌋ with remainder, then the remainder carries into the low
	// word since 2^128/q = hi*2^64 + ⌊(rem*2^64)/q⌋.
	hi, rem := bits.Div64(1, 0, q)
	lo, _ := bits.Div64(rem, 0, q)
	return []uint64{hi, lo}, nil
}

// BarrettReduce63 reduces a 64-bit value x < q^2 < 2^124 (q < 2^62) modulo
// q using a single Barrett multiplication followed by a single conditional
// subtraction; used on single-limb inputs (spec's barrett_reduce).
func BarrettReduce63(x, q uint64, u []uint64) uint64 {
	s0, _ := bits.Mul64(x, u[0])
	r := x - s0*q
	if r >= q {
		r -= q
	}
	return r
}

// BarrettReduce128 reduces a 128-bit value (lo, hi) modulo q, following the
// teacher's BRed double-multiplication shape; the caller must ensure hi < q
// so that the single final conditional subtract suffices (spec's
// barrett_reduce_128 contract).
func BarrettReduce128(lo, hi, q uint64, u []uint64) uint64 {
	var mhi, mlo, s0, s1, carry, lhi uint64

	lhi, _ = bits.Mul64(lo, u[1])

	mhi, mlo = bits.Mul64(lo, u[0])
	s0, carry = bits.Add64(mlo, lhi, 0)
	s1 = mhi + carry

	mhi, mlo = bits.Mul64(hi, u[1])
	_, carry = bits.Add64(mlo, s0, 0)
	lhi = mhi + carry

	s0 = hi*u[0] + s1 + lhi

	r := lo - s0*q
	if r >= q {
		r -= q
	}
	return r
}

// AddMod returns (a+b) mod q for a, b in [0, q).
func AddMod(a, b, q uint64) uint64 {
	r := a + b
	if r >= q {
		r -= q
	}
	return r
}

// SubMod returns (a-b) mod q for a, b in [0, q).
func SubMod(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a - b + q
}

// NegMod returns (-a) mod q for a in [0, q).
func NegMod(a, q uint64) uint64 {
	if a == 0 {
		return 0
	}
	return q - a
}

// CRed reduces a in [0, 2q) down to [0, q) with a single conditional
// subtraction; the common final-guard step after lazy reductions.
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}

// MRedParams computes qInv = q^{-1} mod 2^64 (q odd), the Montgomery constant
// required by MRed and InvMForm, as q^(2^63-1) mod 2^64 via 63 rounds of
// square-and-multiply.
func MRedParams(q uint64) uint64 {
	qInv := uint64(1)
	x := q
	for i := 0; i < 63; i++ {
		qInv *= x
		x *= x
	}
	return qInv
}

// MForm switches a into the Montgomery domain: a*2^64 mod q. u is the
// Barrett ratio pair from BRedParams (u[0] = hi word, u[1] = lo word).
func MForm(a, q uint64, u []uint64) uint64 {
	mhi, _ := bits.Mul64(a, u[1])
	r := -(a*u[0] + mhi) * q
	if r >= q {
		r -= q
	}
	return r
}

// InvMForm switches a out of the Montgomery domain: a*2^{-64} mod q.
func InvMForm(a, q, qInv uint64) uint64 {
	r, _ := bits.Mul64(a*qInv, q)
	r = q - r
	if r >= q {
		r -= q
	}
	return r
}

// MRed computes x*y*2^{-64} mod q, the single-multiplication-per-coefficient
// Montgomery product used throughout the NTT butterflies.
func MRed(x, y, q, qInv uint64) uint64 {
	ahi, alo := bits.Mul64(x, y)
	h, _ := bits.Mul64(alo*qInv, q)
	r := ahi - h + q
	if r >= q {
		r -= q
	}
	return r
}

// MRedConstant is MRed without the final conditional subtraction: the
// result lies in [0, 2q) and is suitable for lazily-reduced inner loops
// (spec's mul_mod_lazy).
func MRedConstant(x, y, q, qInv uint64) uint64 {
	ahi, alo := bits.Mul64(x, y)
	h, _ := bits.Mul64(alo*qInv, q)
	return ahi - h + q
}

// MultiplyOperand is the precomputed (operand, quotient) pair used by
// single-multiplication-per-coefficient hot loops (Shoup's trick):
// quotient = ⌊operand*2^64/q⌋, so that x*operand mod q costs one high
// multiply (x*quotient, keep the high word) plus one low multiply and
// subtract, instead of a full double-width Barrett reduction.
type MultiplyOperand struct {
	Operand  uint64
	Quotient uint64
}

// NewMultiplyOperand precomputes the Shoup quotient for operand mod q.
func NewMultiplyOperand(operand, q uint64) MultiplyOperand {
	quotient, _ := bits.Div64(operand%q, 0, q)
	return MultiplyOperand{Operand: operand % q, Quotient: quotient}
}

// MulMod returns a*b mod q, fully reduced to [0, q).
func MulMod(a, b, q uint64, bredParams []uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return BarrettReduce128(lo, hi, q, bredParams)
}

// MulModLazy returns x*op mod q, left in [0, 2q); callers apply a final
// CRed. x may itself be in [0, 2q) (the NTT butterfly's working range).
func MulModLazy(x uint64, op MultiplyOperand, q uint64) uint64 {
	hi, _ := bits.Mul64(x, op.Quotient)
	return x*op.Operand - hi*q
}

// PowMod returns a^e mod q via square-and-multiply.
func PowMod(a, e, q uint64, bredParams []uint64) uint64 {
	if q == 1 {
		return 0
	}
	result := uint64(1) % q
	base := a % q
	for e > 0 {
		if e&1 == 1 {
			result = MulMod(result, base, q, bredParams)
		}
		base = MulMod(base, base, q, bredParams)
		e >>= 1
	}
	return result
}

// TryInvertMod returns the multiplicative inverse of a mod q via the
// extended Euclidean algorithm. ok is false when a and q are not coprime.
func TryInvertMod(a, q uint64) (inv uint64, ok bool) {
	if q == 0 {
		return 0, false
	}
	ai := int64(a % q)
	qi := int64(q)
	r0, r1 := qi, ai
	t0, t1 := int64(0), int64(1)
	for r1 != 0 {
		quo := r0 / r1
		r0, r1 = r1, r0-quo*r1
		t0, t1 = t1, t0-quo*t1
	}
	if r0 != 1 {
		return 0, false
	}
	if t0 < 0 {
		t0 += qi
	}
	return uint64(t0) % q, true
}

// DotProductMod accumulates the pairwise products of a and b (at most 256
// terms) and reduces once at the end using a 128-bit accumulator. The
// accumulator cannot overflow when q*q*256 < 2^128, which holds for
// q < 2^60; for larger q, 256 products can overflow it.
func DotProductMod(a, b []uint64, q uint64, bredParams []uint64) uint64 {
	if len(a) != len(b) {
		panic("DotProductMod: mismatched operand lengths")
	}
	if len(a) > 256 {
		panic("DotProductMod: accumulator bound exceeded (max 256 terms)")
	}
	var accHi, accLo uint64
	for i := range a {
		hi, lo := bits.Mul64(a[i], b[i])
		var carry uint64
		accLo, carry = bits.Add64(accLo, lo, 0)
		accHi += hi + carry
	}
	return BarrettReduce128(accLo, accHi%q, q, bredParams)
}
