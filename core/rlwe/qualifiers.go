package rlwe

import (
	"golang.org/x/exp/slices"

	"github.com/latticecore/engine/ring"
)

// Qualifiers is the admission bitmask derived from a Parameters value
// (spec §3, "Qualifiers"), computed once per ContextData node by the
// context builder.
type Qualifiers struct {
	ParametersSet               bool
	UsingFFT                    bool
	UsingNTT                    bool
	UsingBatching               bool
	UsingFastPlainLift          bool
	UsingHEStdSecurity          bool
	UsingDescendingModulusChain bool
}

// SecurityLevel names a target HE-standard security level used by the
// C14 bit-budget table.
type SecurityLevel int

const (
	SecurityNone SecurityLevel = iota
	Security128
	Security192
	Security256
)

// securityTable gives, for each standard security level, the maximum total
// coeff_modulus bit-size admissible at a given LogN, mirroring the
// HomomorphicEncryption.org security-standard tables SEAL ships (the
// example pack carries no such table verbatim; these are the well-known
// published bit budgets, not a teacher-grounded computation — see
// DESIGN.md).
var securityTable = map[SecurityLevel]map[int]int{
	Security128: {
		10: 27, 11: 54, 12: 109, 13: 218, 14: 438, 15: 881, 16: 1747,
	},
	Security192: {
		10: 19, 11: 37, 12: 75, 13: 152, 14: 305, 15: 611, 16: 1228,
	},
	Security256: {
		10: 14, 11: 29, 12: 58, 13: 118, 14: 237, 15: 476, 16: 956,
	},
}

// MaxBitsForSecurity returns the maximum total coeff_modulus bit budget for
// (logN, level), and ok=false if logN is outside the published table.
// SecurityNone imposes no budget and returns (0, true) for every logN.
func MaxBitsForSecurity(logN int, level SecurityLevel) (bits int, ok bool) {
	if level == SecurityNone {
		return 0, true
	}
	table, present := securityTable[level]
	if !present {
		return 0, false
	}
	bits, ok = table[logN]
	return bits, ok
}

// totalCoeffModulusBits sums the bit-lengths of every prime in moduli.
func totalCoeffModulusBits(moduli []uint64) int {
	total := 0
	for _, q := range moduli {
		total += bitLen64(q)
	}
	return total
}

// ComputeQualifiers derives the admission bitmask for p, checking HE
// standard security against level unless level is SecurityNone.
func ComputeQualifiers(p Parameters, level SecurityLevel) Qualifiers {
	var q Qualifiers

	n := p.N()
	q.UsingFFT = n > 0 && n&(n-1) == 0

	q.UsingNTT = true
	twoN := uint64(2 * n)
	for _, qi := range p.coeffModulus {
		if (qi-1)%twoN != 0 {
			q.UsingNTT = false
			break
		}
	}

	if p.scheme == BFV || p.scheme == BGV {
		t := p.plainModulus
		q.UsingBatching = t != 0 && (t-1)%twoN == 0 && ring.IsPrime(t)
		q.UsingFastPlainLift = true
		for _, qi := range p.coeffModulus {
			if qi%t != 1 {
				q.UsingFastPlainLift = false
				break
			}
		}
	}

	q.UsingDescendingModulusChain = slices.IsSortedFunc(p.coeffModulus, func(a, b uint64) bool { return a > b })

	if max, ok := MaxBitsForSecurity(p.logN, level); ok {
		q.UsingHEStdSecurity = totalCoeffModulusBits(p.coeffModulus) <= max || level == SecurityNone
	}

	q.ParametersSet = q.UsingFFT && q.UsingNTT

	return q
}
