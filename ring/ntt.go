package ring

// Forward computes the in-place negacyclic NTT of values (length N) modulo
// the SubRing's prime, using the Cooley-Tukey (decimation-in-time)
// butterfly (the Longa-Naehrig shape named in the spec). Input is in
// natural order; output is in bit-reversed order.
//
// Each stage halves the butterfly stride t and doubles the twiddle-table
// stride m, reading RootsForward[m+i] for the i-th butterfly of stage m.
// Coefficients are kept fully reduced to [0, q) between stages: the spec's
// lazy [0, 4q) fast path is a straight-line-unrolling optimization this
// implementation trades for a simpler, equally correct butterfly.
func (s *SubRing) Forward(values []uint64) {
	N := s.N
	q := s.Modulus
	roots := s.RootsForward

	t := N
	for m := 1; m < N; m <<= 1 {
		t >>= 1
		for i := 0; i < m; i++ {
			j1 := 2 * i * t
			j2 := j1 + t
			root := roots[m+i]
			for j := j1; j < j2; j++ {
				u := values[j]
				v := CRed(MulModLazy(values[j+t], root, q), q)
				values[j] = AddMod(u, v, q)
				values[j+t] = SubMod(u, v, q)
			}
		}
	}
}

// Inverse computes the in-place negacyclic inverse NTT of values (length N).
// Input is in bit-reversed order; output is in natural order: the
// Gentleman-Sande (decimation-in-frequency) butterfly, reading the
// scrambled RootsBackward table sequentially (spec §4.3's "why scrambled"),
// and folding N^{-1} into the last stage.
func (s *SubRing) Inverse(values []uint64) {
	N := s.N
	q := s.Modulus
	roots := s.RootsBackward

	t := 1
	idx := 1
	for m := N; m > 1; m >>= 1 {
		h := m >> 1
		j1 := 0
		for i := 0; i < h; i++ {
			j2 := j1 + t
			root := roots[idx]
			idx++
			for j := j1; j < j2; j++ {
				u := values[j]
				v := values[j+t]
				values[j] = AddMod(u, v, q)
				values[j+t] = CRed(MulModLazy(SubMod(u, v, q), root, q), q)
			}
			j1 += 2 * t
		}
		t <<= 1
	}

	nInvOp := NewMultiplyOperand(s.NInv, q)
	for i := 0; i < N; i++ {
		values[i] = CRed(MulModLazy(values[i], nInvOp, q), q)
	}
}
