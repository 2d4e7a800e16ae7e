package rlwe

import (
	"github.com/latticecore/engine/cryptoerr"
	"github.com/latticecore/engine/ring"
	"github.com/latticecore/engine/serialization"
)

// Plaintext is either a coefficient vector mod t (BFV) or a vector of RNS
// residues at some chain level (CKKS), tagged with parms_id and scale
// (spec §3). It owns its coefficient buffer exclusively.
type Plaintext struct {
	ParmsID serialization.ParmsID
	Value   *ring.Poly
	Scale   Scale
	IsNTT   bool
}

// NewPlaintext allocates a zero Plaintext at the given ContextData's level.
func NewPlaintext(cd *ContextData) *Plaintext {
	return &Plaintext{
		ParmsID: cd.ParmsID,
		Value:   cd.Parms.RingQ().AtLevel(cd.ChainIndex).NewPoly(),
		Scale:   NewScale(1),
	}
}

// BodyBytes encodes the body layout spec §6 names for Plaintext:
// parms_id(32); u64 coeff_count; f64 scale; u8 is_ntt; u64 data_len; data.
func (pt *Plaintext) BodyBytes() []byte {
	w := serialization.NewWriter()
	idBytes := pt.ParmsID.Bytes()
	w.WriteBytes(idBytes[:])
	w.WriteUint64(uint64(pt.Value.N()))
	w.WriteFloat64(pt.Scale.Value)
	if pt.IsNTT {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
	w.WriteUint64Slice(flattenPoly(pt.Value))
	return w.Bytes()
}

// ParsePlaintextBody reverses BodyBytes, validating against ctx via
// is_valid_for before the caller publishes the result (spec §4.8).
func ParsePlaintextBody(ctx *Context, body []byte) (*Plaintext, *cryptoerr.Error) {
	r := serialization.NewReader(body)

	idBytes, err := r.ReadBytes(serialization.ParmsIDSize)
	if err != nil {
		return nil, err
	}
	id := serialization.ParmsIDFromBytes(idBytes)

	coeffCount, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	scale, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}
	isNTTByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	data, err := r.ReadUint64Slice()
	if err != nil {
		return nil, err
	}

	cd, ok := ctx.GetContextData(id)
	if !ok {
		return nil, cryptoerr.State("plaintext's parms_id does not belong to the supplied context")
	}
	if !id.IsZero() && uint64(cd.Parms.N()) != coeffCount {
		return nil, cryptoerr.Corrupt("coeff_count", "plaintext coeff_count %d does not match context N=%d", coeffCount, cd.Parms.N())
	}

	poly := unflattenPoly(data, cd.Parms.N(), cd.ChainIndex)

	return &Plaintext{
		ParmsID: id,
		Value:   poly,
		Scale:   NewScale(scale),
		IsNTT:   isNTTByte != 0,
	}, nil
}

// Ciphertext is a size-s (>=2) array of RNS polynomials at a specific chain
// level (spec §3): carries parms_id, scale, is_ntt_form and a BGV
// correction factor.
type Ciphertext struct {
	ParmsID          serialization.ParmsID
	Value            []*ring.Poly
	Scale            Scale
	IsNTT            bool
	CorrectionFactor uint64
}

// NewCiphertext allocates a degree-(size-1) zero Ciphertext at cd's level.
func NewCiphertext(cd *ContextData, size int) *Ciphertext {
	value := make([]*ring.Poly, size)
	for i := range value {
		value[i] = cd.Parms.RingQ().AtLevel(cd.ChainIndex).NewPoly()
	}
	return &Ciphertext{
		ParmsID:          cd.ParmsID,
		Value:            value,
		Scale:            NewScale(1),
		CorrectionFactor: 1,
	}
}

// Degree returns len(Value)-1.
func (ct *Ciphertext) Degree() int { return len(ct.Value) - 1 }

// BodyBytes encodes the body layout spec §6 names for Ciphertext:
// parms_id; u64 size; u64 poly_modulus_degree; u64 coeff_modulus_size;
// f64 scale; u64 correction_factor; u8 is_ntt; u64 data_len; data.
func (ct *Ciphertext) BodyBytes() []byte {
	w := serialization.NewWriter()
	idBytes := ct.ParmsID.Bytes()
	w.WriteBytes(idBytes[:])
	w.WriteUint64(uint64(len(ct.Value)))

	n, coeffModulusSize := 0, 0
	if len(ct.Value) > 0 {
		n = ct.Value[0].N()
		coeffModulusSize = ct.Value[0].Level() + 1
	}
	w.WriteUint64(uint64(n))
	w.WriteUint64(uint64(coeffModulusSize))
	w.WriteFloat64(ct.Scale.Value)
	w.WriteUint64(ct.CorrectionFactor)
	if ct.IsNTT {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}

	var flat []uint64
	for _, p := range ct.Value {
		flat = append(flat, flattenPoly(p)...)
	}
	w.WriteUint64Slice(flat)
	return w.Bytes()
}

// ParseCiphertextBody reverses BodyBytes, validating against ctx.
func ParseCiphertextBody(ctx *Context, body []byte) (*Ciphertext, *cryptoerr.Error) {
	return parseCiphertextFrom(ctx, serialization.NewReader(body))
}

// parseCiphertextFrom reads one Ciphertext body from r, consuming exactly
// its own fields and leaving any trailing bytes (e.g. sibling entries in a
// KSwitchKeys table) untouched.
func parseCiphertextFrom(ctx *Context, r *serialization.Reader) (*Ciphertext, *cryptoerr.Error) {
	idBytes, err := r.ReadBytes(serialization.ParmsIDSize)
	if err != nil {
		return nil, err
	}
	id := serialization.ParmsIDFromBytes(idBytes)

	size, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	coeffModulusSize, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	scale, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}
	correctionFactor, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	isNTTByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	data, err := r.ReadUint64Slice()
	if err != nil {
		return nil, err
	}

	cd, ok := ctx.GetContextData(id)
	if !ok {
		return nil, cryptoerr.State("ciphertext's parms_id does not belong to the supplied context")
	}
	if uint64(cd.Parms.N()) != n || uint64(cd.ChainIndex+1) != coeffModulusSize {
		return nil, cryptoerr.State("ciphertext shape does not match its chain level")
	}
	if uint64(len(data)) != size*n*coeffModulusSize {
		return nil, cryptoerr.Corrupt("data_len", "ciphertext data_len does not match size*N*coeff_modulus_size")
	}

	value := make([]*ring.Poly, size)
	for i := range value {
		chunk := data[uint64(i)*n*coeffModulusSize : uint64(i+1)*n*coeffModulusSize]
		value[i] = unflattenPoly(chunk, int(n), int(coeffModulusSize)-1)
	}

	return &Ciphertext{
		ParmsID:          id,
		Value:            value,
		Scale:            NewScale(scale),
		IsNTT:            isNTTByte != 0,
		CorrectionFactor: correctionFactor,
	}, nil
}

func flattenPoly(p *ring.Poly) []uint64 {
	out := make([]uint64, 0, p.N()*(p.Level()+1))
	for _, row := range p.Coeffs {
		out = append(out, row...)
	}
	return out
}

func unflattenPoly(data []uint64, n, level int) *ring.Poly {
	p := ring.NewPoly(n, level)
	for i := range p.Coeffs {
		copy(p.Coeffs[i], data[i*n:(i+1)*n])
	}
	return p
}

