package ring

import (
	"sync"

	"github.com/latticecore/engine/cryptoerr"
)

// GaloisGen is the generator g of <g, -1> = (Z/2NZ)*, the group of Galois
// elements realizing every rotation and the column swap, matching the
// teacher's choice of 3 as the base generator (spec §4.6).
const GaloisGen uint64 = 3

// GaloisTool maps signed rotation steps to Galois elements and applies the
// corresponding automorphism X -> X^k to polynomials, in both coefficient
// and NTT form. NTT-domain permutation tables are generated lazily and
// cached behind a read/write lock: concurrent lookups of an already-cached
// element cost one read-lock acquisition; a miss upgrades to a write lock
// to populate the table (§4.6, §5).
type GaloisTool struct {
	n       int
	nthRoot uint64
	logN    int

	mu    sync.RWMutex
	cache map[uint64][]uint64
}

// NewGaloisTool builds a GaloisTool for ring degree n = 2^logN.
func NewGaloisTool(n int) (*GaloisTool, *cryptoerr.Error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, cryptoerr.Argument("N must be a power of two, got %d", n)
	}
	logN := 0
	for 1<<logN < n {
		logN++
	}
	return &GaloisTool{
		n:       n,
		nthRoot: uint64(2 * n),
		logN:    logN,
		cache:   make(map[uint64][]uint64),
	}, nil
}

// EltFromStep maps a signed rotation step (positive rotates left, negative
// rotates right) to the Galois element k realizing that rotation on the
// batched slot layout: k = g^step mod 2N for step > 0, and k = g^{-step}'s
// modular inverse mod 2N for step < 0. Step 0 maps to 2N-1, the
// conjugation (column-swap) element.
func (g *GaloisTool) EltFromStep(step int) uint64 {
	mod2N := g.nthRoot
	if step == 0 {
		return mod2N - 1
	}

	var e int
	if step < 0 {
		e = -step
	} else {
		e = step
	}

	k := uint64(1)
	base := GaloisGen
	for i := 0; i < e; i++ {
		k = (k * base) % mod2N
	}

	if step < 0 {
		inv, ok := TryInvertModPow2(k, mod2N)
		if !ok {
			panic("ring: galois element has no inverse mod 2N, which cannot happen for odd k")
		}
		return inv
	}
	return k
}

// TryInvertModPow2 inverts an odd k modulo a power-of-two modulus m via
// the extended Euclidean algorithm (every Galois element is odd, and 2N is
// always a power of two, so this always succeeds for a valid element).
func TryInvertModPow2(k, m uint64) (uint64, bool) {
	if k&1 == 0 {
		return 0, false
	}
	// Odd numbers are always invertible mod 2^t; use signed extended gcd.
	a := int64(k % m)
	n := int64(m)
	old_r, r := a, n
	old_s, s := int64(1), int64(0)
	for r != 0 {
		q := old_r / r
		old_r, r = r, old_r-q*r
		old_s, s = s, old_s-q*s
	}
	if old_r != 1 && old_r != -1 {
		return 0, false
	}
	inv := old_s
	if old_r == -1 {
		inv = -inv
	}
	inv %= n
	if inv < 0 {
		inv += n
	}
	return uint64(inv), true
}

// GetEltsAll enumerates the conjugation (column-swap) element first,
// followed by the power-of-3 generating set needed for a baby-step
// rotation tree: for each i in [1, logN), the pair (step(i), step(-i)).
// For N=8 this yields [15, 3, 11, 9, 9] (spec scenario S3).
func (g *GaloisTool) GetEltsAll() []uint64 {
	elts := make([]uint64, 0, 2*(g.logN-1)+1)
	elts = append(elts, g.EltFromStep(0))
	for i := 1; i < g.logN; i++ {
		elts = append(elts, g.EltFromStep(i))
		elts = append(elts, g.EltFromStep(-i))
	}
	return elts
}

// permutation returns (and caches) the NTT-domain index table for Galois
// element k: index[i] gives the source slot that X^i's image under
// X -> X^k reads from.
func (g *GaloisTool) permutation(k uint64) []uint64 {
	g.mu.RLock()
	idx, ok := g.cache[k]
	g.mu.RUnlock()
	if ok {
		return idx
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if idx, ok = g.cache[k]; ok {
		return idx
	}

	// tmp1/tmp2 range over the N-wide coefficient index space; the mask
	// alone carries the NthRoot = 2N modulus, matching the teacher's
	// AutomorphismNTTIndex.
	mask := g.nthRoot - 1
	idx = make([]uint64, g.n)
	for i := 0; i < g.n; i++ {
		tmp1 := 2*bitReverseGeneric(uint64(i), g.logN) + 1
		tmp2 := ((k*tmp1)&mask - 1) >> 1
		idx[i] = bitReverseGeneric(tmp2, g.logN)
	}
	g.cache[k] = idx
	return idx
}

func bitReverseGeneric(x uint64, logN int) uint64 {
	r := uint64(0)
	for i := 0; i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// ApplyNTT applies the automorphism X^i -> X^{i*k} to polIn (given in NTT
// form) writing the result to polOut, one RNS limb at a time. polIn and
// polOut must not alias.
func (r *Ring) ApplyNTT(gt *GaloisTool, polIn *Poly, galEl uint64, polOut *Poly) {
	idx := gt.permutation(galEl)
	for lvl := range r.subRings {
		src, dst := polIn.Coeffs[lvl], polOut.Coeffs[lvl]
		for i := 0; i < r.n; i++ {
			dst[i] = src[idx[i]]
		}
	}
}

// Apply applies the automorphism X^i -> X^{i*k} in coefficient form to
// polIn writing to polOut: index i*k mod 2N either lands in [0, N) (copy)
// or is reflected with negation (since X^N == -1 in R_q). polIn and
// polOut must not alias.
func (r *Ring) Apply(polIn *Poly, k uint64, polOut *Poly) {
	n := uint64(r.n)
	mask := n - 1
	for lvl, s := range r.subRings {
		src, dst := polIn.Coeffs[lvl], polOut.Coeffs[lvl]
		for i := uint64(0); i < n; i++ {
			rawIdx := i * k
			idx := rawIdx & mask
			negate := (rawIdx>>uint(r.logN))&1 == 1
			v := src[i]
			if negate {
				v = NegMod(v, s.Modulus)
			}
			dst[idx] = v
		}
	}
}
