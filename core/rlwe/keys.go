package rlwe

import (
	"github.com/latticecore/engine/cryptoerr"
	"github.com/latticecore/engine/serialization"
)

// KSwitchKeys is a jagged table of ciphertext-shaped objects anchoring a
// key-switching key set to the key level of the chain (spec §3). Each
// outer entry is one decomposition digit; its inner slice holds the
// per-modulus key-switching ciphertexts for that digit.
type KSwitchKeys struct {
	ParmsID serialization.ParmsID
	Keys    [][]*Ciphertext
}

// RelinKeys is a KSwitchKeys specialized for relinearization: one outer
// entry, one key-switching ciphertext per coeff_modulus prime.
type RelinKeys struct {
	KSwitchKeys
}

// GaloisKeys maps a Galois element to the KSwitchKeys that realizes the
// corresponding automorphism as a key-switch.
type GaloisKeys struct {
	GaloisElement uint64
	KSwitchKeys   KSwitchKeys
}

// BodyBytes encodes the body layout spec §6 names for KSwitchKeys:
// parms_id; u64 outer_dim; { u64 inner_dim; Ciphertext[inner_dim] }[outer_dim].
func (k *KSwitchKeys) BodyBytes() []byte {
	w := serialization.NewWriter()
	idBytes := k.ParmsID.Bytes()
	w.WriteBytes(idBytes[:])
	w.WriteUint64(uint64(len(k.Keys)))
	for _, inner := range k.Keys {
		w.WriteUint64(uint64(len(inner)))
		for _, ct := range inner {
			w.WriteBytes(ct.BodyBytes())
		}
	}
	return w.Bytes()
}

// ParseKSwitchKeysBody reverses BodyBytes. Each inner Ciphertext body is
// self-delimiting (it carries its own size/data_len fields), so entries are
// read back to back without an explicit byte-length prefix per ciphertext.
func ParseKSwitchKeysBody(ctx *Context, body []byte) (*KSwitchKeys, *cryptoerr.Error) {
	r := serialization.NewReader(body)

	idBytes, err := r.ReadBytes(serialization.ParmsIDSize)
	if err != nil {
		return nil, err
	}
	id := serialization.ParmsIDFromBytes(idBytes)

	outerDim, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}

	keys := make([][]*Ciphertext, outerDim)
	for i := range keys {
		innerDim, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		row := make([]*Ciphertext, innerDim)
		for j := range row {
			ct, cerr := parseCiphertextFrom(ctx, r)
			if cerr != nil {
				return nil, cerr
			}
			row[j] = ct
		}
		keys[i] = row
	}

	return &KSwitchKeys{ParmsID: id, Keys: keys}, nil
}
