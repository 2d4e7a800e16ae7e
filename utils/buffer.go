package utils

import "encoding/binary"

// Buffer is an append/consume byte cursor for packing and unpacking
// fixed-width fields, grounded on the teacher's own Buffer helper of the
// same name. No other package of this module uses it; the wire format in
// package serialization has its own little-endian Writer/Reader. Writes append at the tail; reads consume from the
// head, big-endian, matching the teacher's byte order.
type Buffer struct {
	buf []byte
}

// NewBuffer wraps buf (not copied) for reading and/or further writing.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{buf: buf}
}

// Bytes returns the buffer's current unread contents.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// WriteUint8 appends a single byte.
func (b *Buffer) WriteUint8(v uint8) {
	b.buf = append(b.buf, v)
}

// ReadUint8 consumes and returns the first byte.
func (b *Buffer) ReadUint8() uint8 {
	v := b.buf[0]
	b.buf = b.buf[1:]
	return v
}

// WriteUint64 appends v as 8 big-endian bytes.
func (b *Buffer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

// ReadUint64 consumes and returns the next 8 bytes as a big-endian uint64.
func (b *Buffer) ReadUint64() uint64 {
	v := binary.BigEndian.Uint64(b.buf[:8])
	b.buf = b.buf[8:]
	return v
}

// WriteUint64Slice appends every element of s as 8 big-endian bytes.
func (b *Buffer) WriteUint64Slice(s []uint64) {
	for _, v := range s {
		b.WriteUint64(v)
	}
}

// ReadUint64Slice fills dst by consuming len(dst)*8 bytes.
func (b *Buffer) ReadUint64Slice(dst []uint64) {
	for i := range dst {
		dst[i] = b.ReadUint64()
	}
}
