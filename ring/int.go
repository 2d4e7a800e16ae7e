package ring

import (
	"crypto/rand"
	"math/big"
)

// Int is a convenience wrapper around math/big.Int, used wherever the
// teacher itself reaches for math/big rather than the raw limb kernel:
// CRT composition results and security-budget bit accounting (grounded on
// ring/int.go).
type Int struct {
	Value big.Int
}

// NewUint creates an Int from a uint64.
func NewUint(v uint64) *Int {
	i := new(Int)
	i.Value.SetUint64(v)
	return i
}

// NewFromLimbs creates an Int from little-endian uint64 limbs.
func NewFromLimbs(limbs []uint64) *Int {
	i := new(Int)
	bs := make([]byte, len(limbs)*8)
	for idx, w := range limbs {
		be := len(limbs) - 1 - idx
		for b := 0; b < 8; b++ {
			bs[be*8+b] = byte(w >> uint(56-8*b))
		}
	}
	i.Value.SetBytes(bs)
	return i
}

// Limbs returns v's little-endian uint64 limb representation, zero-padded
// (or truncated) to exactly `count` limbs.
func (i *Int) Limbs(count int) []uint64 {
	bs := i.Value.Bytes()
	out := make([]uint64, count)
	for idx := 0; idx < len(bs); idx++ {
		bytePos := len(bs) - 1 - idx
		limb := idx / 8
		if limb >= count {
			break
		}
		shift := uint(8 * (idx % 8))
		out[limb] |= uint64(bs[bytePos]) << shift
	}
	return out
}

// IsPrime reports whether the target is probably prime.
func (i *Int) IsPrime(n int) bool {
	return i.Value.ProbablyPrime(n)
}

// Mul returns a new Int holding i*other.
func (i *Int) Mul(other *Int) *Int {
	out := new(Int)
	out.Value.Mul(&i.Value, &other.Value)
	return out
}

// Cmp compares i to other, returning -1, 0 or 1.
func (i *Int) Cmp(other *Int) int {
	return i.Value.Cmp(&other.Value)
}

// RandBelow returns a uniformly random Int in [0, max).
func RandBelow(max *Int) *Int {
	n, err := rand.Int(rand.Reader, &max.Value)
	if err != nil {
		panic(err)
	}
	i := new(Int)
	i.Value = *n
	return i
}

// String returns the decimal representation of the value.
func (i *Int) String() string {
	return i.Value.String()
}
