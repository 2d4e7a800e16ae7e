// Package ring implements the power-of-two cyclotomic ring
// R_q = Z_q[X]/(X^N+1) in Residue Number System representation: 62-bit
// prime modular arithmetic (Barrett/Montgomery/Shoup reductions), the
// negacyclic NTT, Galois automorphisms, and the ring-element store (Poly).
package ring

import (
	"github.com/latticecore/engine/cryptoerr"
)

// Ring is an ordered collection of SubRings, one per active coefficient
// modulus prime, sharing the polynomial degree N. It is immutable once
// built and safe for concurrent reads from multiple goroutines (§5).
type Ring struct {
	n        int
	logN     int
	subRings []*SubRing
}

// NewRing constructs a Ring over N = 2^logN with one SubRing per modulus,
// generating NTT tables for every prime (all primes in a coeff_modulus
// must be NTT-admissible for the engine's multiplication strategy).
func NewRing(n int, moduli []uint64) (r *Ring, err *cryptoerr.Error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, cryptoerr.Argument("N must be a power of two, got %d", n)
	}
	if len(moduli) == 0 {
		return nil, cryptoerr.Argument("coeff_modulus must be non-empty")
	}

	logN := 0
	for 1<<logN < n {
		logN++
	}

	subRings := make([]*SubRing, len(moduli))
	seen := make(map[uint64]bool, len(moduli))
	for i, q := range moduli {
		if q == 0 || q == 1 {
			return nil, cryptoerr.Crypto("modulus at index %d is the sentinel or invalid value %d", i, q)
		}
		if q>>62 != 0 {
			return nil, cryptoerr.Crypto("modulus at index %d (%d) does not fit in 62 bits", i, q)
		}
		if seen[q] {
			return nil, cryptoerr.Crypto("duplicate modulus %d in coeff_modulus", q)
		}
		seen[q] = true

		s, serr := NewSubRing(n, q)
		if serr != nil {
			return nil, serr
		}
		if nerr := s.GenNTTTable(uint64(2 * n)); nerr != nil {
			return nil, nerr
		}
		subRings[i] = s
	}

	return &Ring{n: n, logN: logN, subRings: subRings}, nil
}

// N returns the polynomial degree.
func (r *Ring) N() int { return r.n }

// LogN returns log2(N).
func (r *Ring) LogN() int { return r.logN }

// Level returns the index of the last active SubRing (len(SubRings)-1).
func (r *Ring) Level() int { return len(r.subRings) - 1 }

// SubRings returns the ordered per-prime precomputation tables.
func (r *Ring) SubRings() []*SubRing { return r.subRings }

// ModuliChain returns the coefficient-modulus primes, in order.
func (r *Ring) ModuliChain() []uint64 {
	out := make([]uint64, len(r.subRings))
	for i, s := range r.subRings {
		out[i] = s.Modulus
	}
	return out
}

// AtLevel returns a view of r restricted to its first level+1 SubRings,
// sharing the same precomputed tables (no copy). This is how the context
// chain (C8) derives a lower-level Ring from a higher one without
// recomputing NTT tables.
func (r *Ring) AtLevel(level int) *Ring {
	if level < 0 || level > r.Level() {
		panic("ring: AtLevel out of range")
	}
	return &Ring{n: r.n, logN: r.logN, subRings: r.subRings[:level+1]}
}

// NewPoly allocates an owned, zero Poly at this Ring's level.
func (r *Ring) NewPoly() *Poly {
	return NewPoly(r.n, r.Level())
}

// NTT computes the forward NTT of p into pOut, independently for every
// active RNS limb. p and pOut may alias the same Poly.
func (r *Ring) NTT(p, pOut *Poly) {
	for i, s := range r.subRings {
		if p != pOut {
			copy(pOut.Coeffs[i], p.Coeffs[i])
		}
		s.Forward(pOut.Coeffs[i])
	}
}

// INTT computes the inverse NTT of p into pOut, independently per limb.
func (r *Ring) INTT(p, pOut *Poly) {
	for i, s := range r.subRings {
		if p != pOut {
			copy(pOut.Coeffs[i], p.Coeffs[i])
		}
		s.Inverse(pOut.Coeffs[i])
	}
}

// Add computes p1+p2 mod each qi into pOut, coefficient-wise and
// limb-wise.
func (r *Ring) Add(p1, p2, pOut *Poly) {
	for i, s := range r.subRings {
		a, b, c := p1.Coeffs[i], p2.Coeffs[i], pOut.Coeffs[i]
		for j := 0; j < r.n; j++ {
			c[j] = AddMod(a[j], b[j], s.Modulus)
		}
	}
}

// Sub computes p1-p2 mod each qi into pOut.
func (r *Ring) Sub(p1, p2, pOut *Poly) {
	for i, s := range r.subRings {
		a, b, c := p1.Coeffs[i], p2.Coeffs[i], pOut.Coeffs[i]
		for j := 0; j < r.n; j++ {
			c[j] = SubMod(a[j], b[j], s.Modulus)
		}
	}
}

// MulCoeffs computes the coefficient-wise (NTT-domain) product p1*p2 mod
// each qi into pOut. Polynomial multiplication in coefficient form must
// go through NTT/INTT first (§4.3).
func (r *Ring) MulCoeffs(p1, p2, pOut *Poly) {
	for i, s := range r.subRings {
		a, b, c := p1.Coeffs[i], p2.Coeffs[i], pOut.Coeffs[i]
		for j := 0; j < r.n; j++ {
			c[j] = MulMod(a[j], b[j], s.Modulus, s.BRedParams)
		}
	}
}
