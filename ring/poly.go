package ring

import (
	"github.com/latticecore/engine/cryptoerr"
	"github.com/latticecore/engine/mempool"
)

// Poly is the concrete realization of the spec's "ring-element store": a
// polynomial's RNS representation as one coefficient row per active prime.
// A Poly may own its backing arrays (allocated by NewPoly) or alias
// caller-provided storage (built by NewPolyAliasing or NewPoolPoly; a Poly
// literal with Coeffs set counts as owned) — the
// owned/aliased split named in the design notes, expressed here as a
// runtime flag rather than two distinct exported types, since every
// operation on a Poly is agnostic to which one it got: the only place the
// distinction matters is resize, which aliased buffers simply refuse.
type Poly struct {
	Coeffs  [][]uint64
	aliased bool
}

// NewPoly allocates an owned Poly with `level+1` coefficient rows of
// length N, zero-initialized.
func NewPoly(n, level int) *Poly {
	coeffs := make([][]uint64, level+1)
	buf := make([]uint64, n*(level+1))
	for i := range coeffs {
		coeffs[i] = buf[i*n : (i+1)*n]
	}
	return &Poly{Coeffs: coeffs}
}

// NewPolyAliasing builds a Poly that borrows coeffs without copying. The
// result rejects Resize.
func NewPolyAliasing(coeffs [][]uint64) *Poly {
	return &Poly{Coeffs: coeffs, aliased: true}
}

// NewPoolPoly leases its backing storage from pool instead of allocating
// fresh arrays, for callers that churn through many short-lived
// same-shape polynomials (e.g. a key-switching digit decomposition loop).
// The returned Poly aliases the leased buffer; the caller must Release the
// handle once done with it, after which the Poly must not be touched.
func NewPoolPoly(pool *mempool.Pool, n, level int) (*Poly, *mempool.Handle, *cryptoerr.Error) {
	h, err := pool.Get(n * (level + 1))
	if err != nil {
		return nil, nil, err
	}
	coeffs := make([][]uint64, level+1)
	for i := range coeffs {
		coeffs[i] = h.Buf[i*n : (i+1)*n]
	}
	return &Poly{Coeffs: coeffs, aliased: true}, h, nil
}

// IsAliased reports whether p borrows its backing storage rather than
// owning it.
func (p *Poly) IsAliased() bool {
	return p.aliased
}

// Level returns the RNS level (len(Coeffs)-1).
func (p *Poly) Level() int {
	return len(p.Coeffs) - 1
}

// N returns the polynomial degree (the length of each coefficient row).
func (p *Poly) N() int {
	if len(p.Coeffs) == 0 {
		return 0
	}
	return len(p.Coeffs[0])
}

// Resize grows or shrinks the number of RNS limbs to level+1, allocating
// fresh rows for any new limb. Panics on an aliased Poly: aliased buffers
// do not own memory and cannot be resized in place, matching the design
// note that resize is the one operation the owned/aliased split must
// reject at the type level rather than discover at runtime deep inside a
// resize implementation.
func (p *Poly) Resize(level int) {
	if p.aliased {
		panic("ring: Resize called on an aliased Poly")
	}
	n := p.N()
	if level+1 <= len(p.Coeffs) {
		p.Coeffs = p.Coeffs[:level+1]
		return
	}
	grown := make([][]uint64, level+1)
	copy(grown, p.Coeffs)
	for i := len(p.Coeffs); i <= level; i++ {
		grown[i] = make([]uint64, n)
	}
	p.Coeffs = grown
}

// CopyNew returns a deep, owned copy of p.
func (p *Poly) CopyNew() *Poly {
	out := NewPoly(p.N(), p.Level())
	for i := range p.Coeffs {
		copy(out.Coeffs[i], p.Coeffs[i])
	}
	return out
}

// Copy copies src's coefficients into p in place; p and src must share
// shape.
func (p *Poly) Copy(src *Poly) {
	for i := range p.Coeffs {
		copy(p.Coeffs[i], src.Coeffs[i])
	}
}

// Zero clears every coefficient to 0.
func (p *Poly) Zero() {
	for _, row := range p.Coeffs {
		for i := range row {
			row[i] = 0
		}
	}
}

// Equal reports whether p and other hold identical coefficients.
func (p *Poly) Equal(other *Poly) bool {
	if p.Level() != other.Level() || p.N() != other.N() {
		return false
	}
	for i := range p.Coeffs {
		for j := range p.Coeffs[i] {
			if p.Coeffs[i][j] != other.Coeffs[i][j] {
				return false
			}
		}
	}
	return true
}
