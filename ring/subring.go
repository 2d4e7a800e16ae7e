package ring

import (
	"math/bits"

	"github.com/latticecore/engine/cryptoerr"
)

// SubRing is the complete precomputation for one coefficient-modulus prime:
// Barrett/Montgomery reduction constants and the bit-reversed NTT twiddle
// tables, stored as Shoup MultiplyOperands (the teacher's Table, spec §4.3).
type SubRing struct {
	N int

	Modulus    uint64
	NthRoot    uint64
	BRedParams []uint64
	MRedParams uint64

	PrimitiveRoot uint64
	Factors       []uint64

	// RootsForward[i] holds ψ^{bit_reverse(i)} as a Shoup MultiplyOperand, for
	// i in [0, N): natural-order input, bit-reversed-order output on
	// Forward.
	RootsForward []MultiplyOperand

	// RootsBackward is deliberately scrambled: RootsBackward[i] holds
	// ψ^{-(bit_reverse(i-1, logN)+1)} as a Shoup MultiplyOperand, so that the
	// inverse butterfly's hot loop reads RootsBackward[i++] sequentially
	// instead of computing bit_reverse(i) on every iteration (spec
	// §4.3 "why scrambled").
	RootsBackward []MultiplyOperand

	// NInv is N^{-1} mod Modulus (plain value; wrapped in a MultiplyOperand
	// at use) folded into the last inverse-NTT stage.
	NInv uint64
}

// NewSubRing builds the reduction constants for N and Modulus, without yet
// generating NTT tables (use GenNTTTable for that, since not every ring
// level needs NTT admissibility, e.g. a plain_modulus ring).
func NewSubRing(N int, modulus uint64) (s *SubRing, err *cryptoerr.Error) {
	if N <= 0 || N&(N-1) != 0 {
		return nil, cryptoerr.Argument("N must be a power of two, got %d", N)
	}
	bred, berr := BRedParams(modulus)
	if berr != nil {
		return nil, berr
	}
	s = &SubRing{N: N, Modulus: modulus, BRedParams: bred}
	if modulus&(modulus-1) != 0 {
		s.MRedParams = MRedParams(modulus)
	}
	return s, nil
}

// GenNTTTable populates the forward/backward twiddle tables for the given
// 2N-th root of unity order. PrimitiveRoot/Factors may be preset by the
// caller to skip refactoring Modulus-1 (mirrors the teacher's
// Table.GenNTTParams fast path used when unmarshalling a precomputed ring).
func (s *SubRing) GenNTTTable(nthRoot uint64) (err *cryptoerr.Error) {
	if !IsPrime(s.Modulus) {
		return cryptoerr.Crypto("modulus %d is not prime", s.Modulus)
	}
	if (s.Modulus-1)%nthRoot != 0 {
		return cryptoerr.Crypto("modulus %d is not congruent to 1 mod %d", s.Modulus, nthRoot)
	}

	s.NthRoot = nthRoot

	var root uint64
	var factors []uint64
	if s.PrimitiveRoot != 0 && s.Factors != nil {
		if !CheckPrimitiveRoot(s.PrimitiveRoot, s.Modulus, nthRoot) {
			return cryptoerr.Crypto("preset primitive root is not valid for modulus %d", s.Modulus)
		}
		root, factors = s.PrimitiveRoot, s.Factors
	} else {
		var perr *cryptoerr.Error
		root, factors, perr = PrimitiveRoot(s.Modulus, nthRoot)
		if perr != nil {
			return perr
		}
	}
	s.PrimitiveRoot = root
	s.Factors = factors

	logNthRoot := bits.Len64(nthRoot>>1) - 1
	half := int(nthRoot >> 1)

	psi := root
	psiInv, ok := TryInvertMod(psi, s.Modulus)
	if !ok {
		return cryptoerr.Crypto("psi is not invertible mod %d", s.Modulus)
	}

	s.NInv = PowMod(uint64(half), s.Modulus-2, s.Modulus, s.BRedParams)

	s.RootsForward = make([]MultiplyOperand, half)
	s.RootsBackward = make([]MultiplyOperand, half)

	// Forward table: natural index i -> ψ^{bit_reverse(i, logNthRoot)}.
	power := uint64(1)
	for i := 0; i < half; i++ {
		j := bitReverse(uint64(i), logNthRoot)
		s.RootsForward[j] = NewMultiplyOperand(power, s.Modulus)
		power = MulMod(power, psi, s.Modulus, s.BRedParams)
	}

	// Backward table: the scrambled layout. Slot i holds
	// ψ^{-(bit_reverse(i-1, logNthRoot)+1)}, computed directly rather
	// than via an extra permutation pass.
	for i := 0; i < half; i++ {
		var src int
		if i == 0 {
			src = 0
		} else {
			src = bitReverse(uint64(i-1), logNthRoot) + 1
		}
		exp := src % half
		s.RootsBackward[i] = NewMultiplyOperand(PowMod(psiInv, uint64(exp), s.Modulus, s.BRedParams), s.Modulus)
	}

	return nil
}

func bitReverse(x uint64, logN int) int {
	r := uint64(0)
	for i := 0; i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return int(r)
}
