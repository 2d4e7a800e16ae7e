package serialization

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/latticecore/engine/cryptoerr"
)

// ParmsIDSize is the width of a parms_id digest in bytes (four u64 words).
const ParmsIDSize = 32

// ParmsID is the 256-bit fingerprint of an EncryptionParameters value,
// grounded on the teacher's compute_parms_id (native SEAL hashing of the
// parameter encoding) but built on BLAKE2Xb's extendable-output mode per
// the engine's domain-hash choice (C10) instead of SHA3/Blake2b-512.
type ParmsID [4]uint64

// Bytes returns the little-endian byte encoding of the digest.
func (id ParmsID) Bytes() [ParmsIDSize]byte {
	var out [ParmsIDSize]byte
	for i, w := range id {
		binary.LittleEndian.PutUint64(out[i*8:(i+1)*8], w)
	}
	return out
}

// IsZero reports whether id is the all-zero sentinel used for
// unassigned-level BFV plaintexts.
func (id ParmsID) IsZero() bool {
	return id == ParmsID{}
}

// ParmsIDFromBytes reassembles a ParmsID from its little-endian byte
// encoding (the inverse of Bytes). raw must be at least ParmsIDSize bytes.
func ParmsIDFromBytes(raw []byte) ParmsID {
	var id ParmsID
	for i := range id {
		id[i] = binary.LittleEndian.Uint64(raw[i*8 : (i+1)*8])
	}
	return id
}

// ComputeParmsID hashes the canonical little-endian encoding of
// (scheme, N, plainModulus, coeffModulus) with a keyless BLAKE2Xb XOF,
// squeezing exactly 32 bytes of output and reassembling them into four
// little-endian u64 words.
func ComputeParmsID(scheme uint8, n uint64, plainModulus uint64, coeffModulus []uint64) (ParmsID, *cryptoerr.Error) {
	xof, err := blake2b.NewXOF(ParmsIDSize, nil)
	if err != nil {
		return ParmsID{}, cryptoerr.Resource("serialization: blake2xb init: %v", err)
	}

	var hdr [17]byte
	hdr[0] = scheme
	binary.LittleEndian.PutUint64(hdr[1:9], n)
	binary.LittleEndian.PutUint64(hdr[9:17], plainModulus)
	if _, err := xof.Write(hdr[:]); err != nil {
		return ParmsID{}, cryptoerr.Resource("serialization: blake2xb write: %v", err)
	}

	lenPrefix := make([]byte, 8)
	binary.LittleEndian.PutUint64(lenPrefix, uint64(len(coeffModulus)))
	if _, err := xof.Write(lenPrefix); err != nil {
		return ParmsID{}, cryptoerr.Resource("serialization: blake2xb write: %v", err)
	}

	moduli := make([]byte, 8*len(coeffModulus))
	for i, q := range coeffModulus {
		binary.LittleEndian.PutUint64(moduli[i*8:(i+1)*8], q)
	}
	if _, err := xof.Write(moduli); err != nil {
		return ParmsID{}, cryptoerr.Resource("serialization: blake2xb write: %v", err)
	}

	var digest [ParmsIDSize]byte
	if _, err := xof.Read(digest[:]); err != nil {
		return ParmsID{}, cryptoerr.Resource("serialization: blake2xb squeeze: %v", err)
	}

	var id ParmsID
	for i := range id {
		id[i] = binary.LittleEndian.Uint64(digest[i*8 : (i+1)*8])
	}
	return id, nil
}
