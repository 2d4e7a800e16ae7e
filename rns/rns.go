// Package rns implements the RNS tool (spec §4.4): CRT decomposition and
// composition between a polynomial's multi-precision representation and its
// per-prime residues, fast base conversion between two RNS bases, the
// modulus-switching primitive shared by BFV level-down and CKKS rescale, and
// the small-modulus reduction BFV decryption needs against plain_modulus.
//
// Grounded on the teacher's RNSRing basis-extension and rescale machinery
// (ring/rns_basis_extension.go, ring/rns_scaling.go): same punctured-product
// construction and same "center, then reduce" shape for fast conversion
// (no exact correction of the residual multiple of Q), expressed here coefficient-at-a-time with math/big products
// rather than the teacher's 8-wide unsafe-pointer SIMD loops, since nothing
// in this engine's scope demands that micro-optimization.
package rns

import (
	"github.com/latticecore/engine/cryptoerr"
	"github.com/latticecore/engine/ring"
)

// Tool precomputes everything needed to move a polynomial between an RNS
// base B (the "own" moduli) and a second base B' (the conversion target),
// and to CRT-compose/decompose against B as a single multi-precision value.
type Tool struct {
	base     []uint64
	baseOut  []uint64
	bredBase []([]uint64)
	bredOut  [][]uint64

	// Q is the product of base, kept as a big.Int-backed Int for
	// decompose/compose.
	q *ring.Int

	// puncturedProducts[i] = (Q/q_i) as an Int, shared across both the
	// CRT-compose path and the base-conversion matrix construction.
	puncturedProducts []*ring.Int

	// invPuncturedProducts[i] = puncturedProducts[i]^{-1} mod q_i.
	invPuncturedProducts []uint64

	// convMatrix[j][i] = (Q/q_i) mod baseOut[j], the per-output-prime
	// fast-conversion matrix named in the spec.
	convMatrix [][]uint64
}

// NewTool builds a Tool converting between base and baseOut.
func NewTool(base, baseOut []uint64) (t *Tool, err *cryptoerr.Error) {
	if len(base) == 0 {
		return nil, cryptoerr.Argument("rns: base must be non-empty")
	}

	bredBase := make([][]uint64, len(base))
	for i, q := range base {
		b, berr := ring.BRedParams(q)
		if berr != nil {
			return nil, berr
		}
		bredBase[i] = b
	}
	bredOut := make([][]uint64, len(baseOut))
	for i, q := range baseOut {
		b, berr := ring.BRedParams(q)
		if berr != nil {
			return nil, berr
		}
		bredOut[i] = b
	}

	q := ring.NewUint(1)
	for _, qi := range base {
		q.Value.Mul(&q.Value, &ring.NewUint(qi).Value)
	}

	t = &Tool{
		base:     append([]uint64(nil), base...),
		baseOut:  append([]uint64(nil), baseOut...),
		bredBase: bredBase,
		bredOut:  bredOut,
		q:        q,
	}

	t.puncturedProducts = make([]*ring.Int, len(base))
	t.invPuncturedProducts = make([]uint64, len(base))
	for i, qi := range base {
		pp := new(ring.Int)
		qiBig := ring.NewUint(qi)
		pp.Value.Div(&t.q.Value, &qiBig.Value)
		t.puncturedProducts[i] = pp

		ppModQi := new(ring.Int)
		ppModQi.Value.Mod(&pp.Value, &qiBig.Value)
		inv, ok := ring.TryInvertMod(ppModQi.Value.Uint64(), qi)
		if !ok {
			return nil, cryptoerr.Crypto("rns: (Q/q_%d) is not invertible mod q_%d; moduli must be pairwise coprime", i, i)
		}
		t.invPuncturedProducts[i] = inv
	}

	t.convMatrix = make([][]uint64, len(baseOut))
	for j, pj := range baseOut {
		row := make([]uint64, len(base))
		pjBig := ring.NewUint(pj)
		for i := range base {
			m := new(ring.Int)
			m.Value.Mod(&t.puncturedProducts[i].Value, &pjBig.Value)
			row[i] = m.Value.Uint64()
		}
		t.convMatrix[j] = row
	}

	return t, nil
}

// Decompose reduces each coefficient of big (a slice of N multi-precision
// values already composed against the full base) modulo every prime in
// base, writing one residue row per prime into out (out[i] must have
// length N).
func Decompose(big []*ring.Int, base []uint64, out [][]uint64) {
	for i, qi := range base {
		qiBig := ring.NewUint(qi)
		for n, v := range big {
			r := new(ring.Int)
			r.Value.Mod(&v.Value, &qiBig.Value)
			out[i][n] = r.Value.Uint64()
		}
	}
}

// Compose performs CRT reconstruction: given one residue row per prime in
// t's base, returns the corresponding multi-precision value in [0, Q) for
// every coefficient.
func (t *Tool) Compose(residues [][]uint64) []*ring.Int {
	n := len(residues[0])
	out := make([]*ring.Int, n)
	for col := 0; col < n; col++ {
		acc := new(ring.Int)
		for i := range t.base {
			scaled := mulMod(residues[i][col], t.invPuncturedProducts[i], t.base[i])
			term := new(ring.Int)
			term.Value.Mul(&t.puncturedProducts[i].Value, &ring.NewUint(scaled).Value)
			acc.Value.Add(&acc.Value, &term.Value)
		}
		acc.Value.Mod(&acc.Value, &t.q.Value)
		out[col] = acc
	}
	return out
}

func mulMod(a, b, q uint64) uint64 {
	bred, _ := ring.BRedParams(q)
	return ring.MulMod(a, b, q, bred)
}

// FastConvertArray computes the approximate base conversion described in
// spec §4.4: for each coefficient, sum_i x_i * (Q/q_i mod p_j), reduced mod
// p_j, where x_i = residue_i * (Q/q_i)^{-1} mod q_i is first centered into
// (-q_i/2, q_i/2]. The result may carry a bounded additive error of Q*rho
// for |rho| <= k/2 (the schemes tolerate it; this tool does not attempt
// exact correction).
func (t *Tool) FastConvertArray(polyIn [][]uint64, polyOut [][]uint64) {
	n := len(polyIn[0])
	k := len(t.base)

	// xi = residue_i * invPuncturedProducts[i] mod q_i, the first-stage
	// per-prime reduction shared by every output prime.
	x := make([][]uint64, k)
	for i := range t.base {
		x[i] = make([]uint64, n)
		bred := t.bredBase[i]
		for col := 0; col < n; col++ {
			x[i][col] = ring.MulMod(polyIn[i][col], t.invPuncturedProducts[i], t.base[i], bred)
		}
	}

	for j, pj := range t.baseOut {
		bred := t.bredOut[j]
		row := t.convMatrix[j]
		qm := new(ring.Int)
		qm.Value.Mod(&t.q.Value, &ring.NewUint(pj).Value)
		qModPj := qm.Value.Uint64()
		for col := 0; col < n; col++ {
			var sum uint64
			for i := 0; i < k; i++ {
				sum = ring.AddMod(sum, ring.MulMod(x[i][col], row[i], pj, bred), pj)
				// Centering: a residue above q_i/2 stands for x_i - q_i, whose
				// term is smaller by (Q/q_i)*q_i = Q.
				if x[i][col] > t.base[i]>>1 {
					sum = ring.SubMod(sum, qModPj, pj)
				}
			}
			polyOut[j][col] = sum
		}
	}
}

// DivideAndRoundQLastInplace implements the shared modulus-switching
// primitive: drop the last prime in t's base, scaling every remaining
// residue row by 1/q_last with rounding (spec §4.4, grounded on
// DivRoundByLastModulus). poly has len(t.base) rows on input; only the
// first len(t.base)-1 rows of poly are written.
func (t *Tool) DivideAndRoundQLastInplace(poly [][]uint64) *cryptoerr.Error {
	k := len(t.base)
	if k < 2 {
		return cryptoerr.State("rns: cannot drop the last prime of a single-prime base")
	}
	qLast := t.base[k-1]
	last := poly[k-1]

	// Center the last-prime residues by adding qLast/2, the standard
	// round-to-nearest correction before dividing by qLast.
	half := (qLast - 1) >> 1
	centered := make([]uint64, len(last))
	for i, v := range last {
		centered[i] = ring.AddMod(v, half, qLast)
	}

	for i := 0; i < k-1; i++ {
		qi := t.base[i]
		bred := t.bredBase[i]
		halfModQi := half % qi
		invQLast, ok := ring.TryInvertMod(qLast, qi)
		if !ok {
			return cryptoerr.Crypto("rns: q_last is not invertible mod q_%d", i)
		}
		row := poly[i]
		for n, v := range row {
			centeredModQi := ring.SubMod(centered[n]%qi, halfModQi, qi)
			diff := ring.SubMod(v, centeredModQi, qi)
			row[n] = ring.MulMod(diff, invQLast, qi, bred)
		}
	}
	return nil
}

// SmMrq performs the small-modulus reduction against plain_modulus t that
// BFV decryption needs, using the single-word Barrett reduction
// BarrettReduce63: each coefficient, already
// scaled by t/Q and rounded via the caller's RNS-to-plaintext conversion,
// is reduced into [0, t).
func SmMrq(coeffs []uint64, t uint64) []uint64 {
	bred, _ := ring.BRedParams(t)
	out := make([]uint64, len(coeffs))
	for i, c := range coeffs {
		out[i] = ring.BarrettReduce63(c, t, bred)
	}
	return out
}
