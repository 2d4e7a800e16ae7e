package rlwe

// Scale tracks the scaling factor carried by a Plaintext or Ciphertext
// (spec §3, §6: "f64 scale" on the wire). Grounded on the teacher's Scale
// type, simplified from its *big.Float/*big.Int pair to a plain float64:
// the wire format names scale as a bare f64, and nothing in this engine's
// scope (no Evaluator) needs the teacher's 128-bit precision tracking or
// its mod-t integer scale variant used by BGV's noise-correction factor.
type Scale struct {
	Value float64
}

// NewScale builds a Scale from a float64 value.
func NewScale(v float64) Scale {
	return Scale{Value: v}
}

// Mul returns the product of two scales.
func (s Scale) Mul(other Scale) Scale {
	return Scale{Value: s.Value * other.Value}
}

// Div returns the quotient of two scales.
func (s Scale) Div(other Scale) Scale {
	return Scale{Value: s.Value / other.Value}
}

// Equal reports whether two scales carry the same value.
func (s Scale) Equal(other Scale) bool {
	return s.Value == other.Value
}
