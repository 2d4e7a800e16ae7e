// Package rlwe implements the scheme-agnostic parameter and context layer
// shared by BFV and CKKS (spec §3–§4.5): EncryptionParameters, the
// Qualifiers admission check, the modulus-switching ContextData chain, and
// the structural (non-evaluator) shapes of Plaintext, Ciphertext and key
// tables, grounded on the teacher's core/rlwe package of the same name.
package rlwe

import (
	"github.com/google/go-cmp/cmp"

	"github.com/latticecore/engine/cryptoerr"
	"github.com/latticecore/engine/ring"
)

// Scheme identifies which homomorphic scheme a parameter set targets.
type Scheme uint8

const (
	BFV Scheme = iota
	CKKS
	BGV
)

func (s Scheme) String() string {
	switch s {
	case BFV:
		return "BFV"
	case CKKS:
		return "CKKS"
	case BGV:
		return "BGV"
	default:
		return "unknown"
	}
}

const (
	// MinN is the smallest admissible poly_modulus_degree.
	MinN = 2
	// MaxN is the largest admissible poly_modulus_degree.
	MaxN = 32768
	// MaxModuliCount is the largest admissible coeff_modulus length.
	MaxModuliCount = 62
	// MinModulusBits and MaxModulusBits bound each coeff_modulus prime's
	// bit length.
	MinModulusBits = 2
	MaxModulusBits = 60
)

// ParametersLiteral is the unchecked, user-facing parameter description.
// NewParametersFromLiteral validates and freezes it into Parameters.
type ParametersLiteral struct {
	Scheme       Scheme
	LogN         int
	CoeffModulus []uint64
	PlainModulus uint64
}

// Parameters is an immutable, validated EncryptionParameters value (spec
// §3). Construct via NewParametersFromLiteral; every field is frozen once
// built.
type Parameters struct {
	scheme       Scheme
	logN         int
	coeffModulus []uint64
	plainModulus uint64

	ringQ *ring.Ring
}

// NewParametersFromLiteral validates lit and builds the ring precomputation
// it requires (§4.5 validation order: N, then moduli count/bit-size/
// distinctness, then plain_modulus, then NTT admissibility via ring
// construction).
func NewParametersFromLiteral(lit ParametersLiteral) (Parameters, *cryptoerr.Error) {
	n := 1 << lit.LogN
	if lit.LogN <= 0 || n < MinN || n > MaxN {
		return Parameters{}, cryptoerr.Crypto("poly_modulus_degree 2^%d out of range [%d, %d]", lit.LogN, MinN, MaxN)
	}

	if len(lit.CoeffModulus) == 0 || len(lit.CoeffModulus) > MaxModuliCount {
		return Parameters{}, cryptoerr.Crypto("coeff_modulus size %d out of range [1, %d]", len(lit.CoeffModulus), MaxModuliCount)
	}

	seen := make(map[uint64]bool, len(lit.CoeffModulus))
	for i, q := range lit.CoeffModulus {
		if !ring.IsPrime(q) {
			return Parameters{}, cryptoerr.Crypto("coeff_modulus[%d]=%d is not prime", i, q)
		}
		bitLen := bitLen64(q)
		if bitLen < MinModulusBits || bitLen > MaxModulusBits {
			return Parameters{}, cryptoerr.Crypto("coeff_modulus[%d] bit-length %d out of range [%d, %d]", i, bitLen, MinModulusBits, MaxModulusBits)
		}
		if seen[q] {
			return Parameters{}, cryptoerr.Crypto("coeff_modulus[%d]=%d duplicates an earlier prime", i, q)
		}
		seen[q] = true
	}

	if lit.Scheme == BFV || lit.Scheme == BGV {
		if lit.PlainModulus == 0 {
			return Parameters{}, cryptoerr.Crypto("plain_modulus must be non-zero for scheme %s", lit.Scheme)
		}
		q := productBig(lit.CoeffModulus)
		if ring.NewUint(lit.PlainModulus).Cmp(q) >= 0 {
			return Parameters{}, cryptoerr.Crypto("plain_modulus must be smaller than the product of coeff_modulus")
		}
	}

	ringQ, rerr := ring.NewRing(n, lit.CoeffModulus)
	if rerr != nil {
		return Parameters{}, cryptoerr.Crypto("coeff_modulus is not NTT-admissible for N=%d: %s", n, rerr.Message)
	}

	coeffModulus := make([]uint64, len(lit.CoeffModulus))
	copy(coeffModulus, lit.CoeffModulus)

	return Parameters{
		scheme:       lit.Scheme,
		logN:         lit.LogN,
		coeffModulus: coeffModulus,
		plainModulus: lit.PlainModulus,
		ringQ:        ringQ,
	}, nil
}

func bitLen64(v uint64) int {
	n := 0
	for v != 0 {
		n++
		v >>= 1
	}
	return n
}

func productBig(moduli []uint64) *ring.Int {
	q := ring.NewUint(1)
	for _, qi := range moduli {
		q = q.Mul(ring.NewUint(qi))
	}
	return q
}

// Scheme returns the scheme this parameter set targets.
func (p Parameters) Scheme() Scheme { return p.scheme }

// LogN returns log2(N).
func (p Parameters) LogN() int { return p.logN }

// N returns the polynomial modulus degree.
func (p Parameters) N() int { return 1 << p.logN }

// CoeffModulus returns a copy of the coefficient modulus chain.
func (p Parameters) CoeffModulus() []uint64 {
	out := make([]uint64, len(p.coeffModulus))
	copy(out, p.coeffModulus)
	return out
}

// PlainModulus returns the plaintext modulus (0 for CKKS).
func (p Parameters) PlainModulus() uint64 { return p.plainModulus }

// RingQ returns the ring built over the full coeff_modulus chain.
func (p Parameters) RingQ() *ring.Ring { return p.ringQ }

// Equal reports whether p and other share the same scheme, degree, and
// coeff_modulus/plain_modulus values.
func (p Parameters) Equal(other Parameters) bool {
	return p.scheme == other.scheme &&
		p.logN == other.logN &&
		p.plainModulus == other.plainModulus &&
		cmp.Equal(p.coeffModulus, other.coeffModulus)
}

// DroppedLast returns a new Parameters with the last prime of coeff_modulus
// removed, or ok=false if that would leave an empty modulus or if the
// trimmed parameter set fails validation.
func (p Parameters) DroppedLast() (out Parameters, ok bool) {
	if len(p.coeffModulus) <= 1 {
		return Parameters{}, false
	}
	lit := ParametersLiteral{
		Scheme:       p.scheme,
		LogN:         p.logN,
		CoeffModulus: p.coeffModulus[:len(p.coeffModulus)-1],
		PlainModulus: p.plainModulus,
	}
	out, err := NewParametersFromLiteral(lit)
	if err != nil {
		return Parameters{}, false
	}
	return out, true
}
