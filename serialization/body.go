package serialization

import (
	"encoding/binary"
	"math"

	"github.com/latticecore/engine/cryptoerr"
)

// Writer accumulates the little-endian fixed-width fields and size-prefixed
// arrays that make up an object's body (spec §6: "a sequence of
// little-endian fixed-width fields followed by size-prefixed arrays").
// Kept separate from utils.Buffer (big-endian) since the wire format here
// is explicitly little-endian.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty body Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated body.
func (w *Writer) Bytes() []byte { return w.buf }

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) { w.buf = append(w.buf, v) }

// WriteUint64 appends v as 8 little-endian bytes.
func (w *Writer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteFloat64 appends v's IEEE-754 bits as 8 little-endian bytes.
func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteBytes appends b verbatim (no length prefix).
func (w *Writer) WriteBytes(b []byte) { w.buf = append(w.buf, b...) }

// WriteUint64Slice appends a u64 length prefix followed by each element.
func (w *Writer) WriteUint64Slice(s []uint64) {
	w.WriteUint64(uint64(len(s)))
	for _, v := range s {
		w.WriteUint64(v)
	}
}

// Reader consumes the little-endian fields a Writer produced.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential little-endian reads.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Remaining reports how many unread bytes are left.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// ReadUint8 consumes and returns the next byte.
func (r *Reader) ReadUint8() (uint8, *cryptoerr.Error) {
	if r.Remaining() < 1 {
		return 0, cryptoerr.Corrupt("body", "serialization: short read for uint8")
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// ReadUint64 consumes and returns the next 8 bytes as a little-endian u64.
func (r *Reader) ReadUint64() (uint64, *cryptoerr.Error) {
	if r.Remaining() < 8 {
		return 0, cryptoerr.Corrupt("body", "serialization: short read for uint64")
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

// ReadFloat64 consumes the next 8 bytes as an IEEE-754 little-endian f64.
func (r *Reader) ReadFloat64() (float64, *cryptoerr.Error) {
	bits, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// ReadBytes consumes and returns the next n bytes verbatim.
func (r *Reader) ReadBytes(n int) ([]byte, *cryptoerr.Error) {
	if r.Remaining() < n {
		return nil, cryptoerr.Corrupt("body", "serialization: short read for %d bytes", n)
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// ReadUint64Slice consumes a u64 length prefix followed by that many u64s.
func (r *Reader) ReadUint64Slice() ([]uint64, *cryptoerr.Error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		v, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
