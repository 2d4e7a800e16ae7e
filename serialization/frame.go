// Package serialization implements the engine's persistence framing (spec
// §4.8): a fixed 16-byte header carrying a magic number, format version,
// compression mode and total size, wrapped around an object's own body
// encoding, grounded on the teacher's WriteTo/ReadFrom/MarshalBinary idiom
// (see core/rlwe Parameters.WriteTo/ReadFrom) but built around an explicit
// header struct rather than the teacher's buffer.Writer abstraction.
package serialization

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"io"

	"github.com/latticecore/engine/cryptoerr"
)

const (
	magic      = uint16(0xA15E)
	headerSize = uint8(16)

	// CompressionNone stores the body as-is.
	CompressionNone uint8 = 0
	// CompressionDeflate runs the body through compress/flate.
	CompressionDeflate uint8 = 1
)

// VersionMajor and VersionMinor identify the wire format this package
// writes and the minimum it accepts on read.
const (
	VersionMajor uint8 = 1
	VersionMinor uint8 = 0
)

// Header is the 16-byte frame preceding every persisted object's body.
type Header struct {
	VersionMajor uint8
	VersionMinor uint8
	ComprMode    uint8
	TotalSize    uint64
}

func (h Header) encode() [16]byte {
	var buf [16]byte
	binary.LittleEndian.PutUint16(buf[0:2], magic)
	buf[2] = headerSize
	buf[3] = h.VersionMajor
	buf[4] = h.VersionMinor
	buf[5] = h.ComprMode
	binary.LittleEndian.PutUint16(buf[6:8], 0)
	binary.LittleEndian.PutUint64(buf[8:16], h.TotalSize)
	return buf
}

func decodeHeader(buf []byte) (Header, *cryptoerr.Error) {
	if len(buf) < 16 {
		return Header{}, cryptoerr.Argument("serialization: header requires 16 bytes, got %d", len(buf))
	}
	if got := binary.LittleEndian.Uint16(buf[0:2]); got != magic {
		return Header{}, cryptoerr.Corrupt("magic", "serialization: bad magic 0x%04X", got)
	}
	if got := buf[2]; got != headerSize {
		return Header{}, cryptoerr.Corrupt("header_size", "serialization: bad header_size %d", got)
	}
	if buf[5] != CompressionNone && buf[5] != CompressionDeflate {
		return Header{}, cryptoerr.Corrupt("compr_mode", "serialization: unknown compr_mode %d", buf[5])
	}
	return Header{
		VersionMajor: buf[3],
		VersionMinor: buf[4],
		ComprMode:    buf[5],
		TotalSize:    binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}

// Save frames body (compressed per mode if requested) with the §4.8 header
// and writes header+body to w, returning the total bytes written.
func Save(w io.Writer, body []byte, mode uint8) (int64, *cryptoerr.Error) {
	if mode != CompressionNone && mode != CompressionDeflate {
		return 0, cryptoerr.Argument("serialization: unknown compr_mode %d", mode)
	}
	payload := body
	if mode == CompressionDeflate {
		var compressed bytes.Buffer
		fw, err := flate.NewWriter(&compressed, flate.DefaultCompression)
		if err != nil {
			return 0, cryptoerr.Resource("serialization: flate writer: %v", err)
		}
		if _, err := fw.Write(body); err != nil {
			return 0, cryptoerr.Resource("serialization: flate write: %v", err)
		}
		if err := fw.Close(); err != nil {
			return 0, cryptoerr.Resource("serialization: flate close: %v", err)
		}
		payload = compressed.Bytes()
	}

	hdr := Header{
		VersionMajor: VersionMajor,
		VersionMinor: VersionMinor,
		ComprMode:    mode,
		TotalSize:    uint64(16 + len(payload)),
	}
	encoded := hdr.encode()

	n1, err := w.Write(encoded[:])
	if err != nil {
		return 0, cryptoerr.Resource("serialization: write header: %v", err)
	}
	n2, err := w.Write(payload)
	if err != nil {
		return 0, cryptoerr.Resource("serialization: write body: %v", err)
	}
	return int64(n1 + n2), nil
}

// Load reads a §4.8 frame from r, validates the header, and returns the
// decoded (decompressed) body.
func Load(r io.Reader) ([]byte, *cryptoerr.Error) {
	var hbuf [16]byte
	if _, err := io.ReadFull(r, hbuf[:]); err != nil {
		return nil, cryptoerr.Argument("serialization: short header: %v", err)
	}
	hdr, cerr := decodeHeader(hbuf[:])
	if cerr != nil {
		return nil, cerr
	}
	if hdr.VersionMajor != VersionMajor {
		return nil, cryptoerr.Corrupt("version_major", "serialization: unsupported version %d.%d", hdr.VersionMajor, hdr.VersionMinor)
	}
	if hdr.TotalSize < 16 {
		return nil, cryptoerr.Corrupt("total_size", "serialization: total_size %d smaller than header", hdr.TotalSize)
	}

	bodyLen := hdr.TotalSize - 16
	payload := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, cryptoerr.Argument("serialization: short body: %v", err)
	}

	if hdr.ComprMode == CompressionNone {
		return payload, nil
	}

	fr := flate.NewReader(bytes.NewReader(payload))
	defer fr.Close()
	body, err := io.ReadAll(fr)
	if err != nil {
		return nil, cryptoerr.Corrupt("body", "serialization: inflate failed: %v", err)
	}
	return body, nil
}

// MarshalBinary frames body with the default (uncompressed) header into a
// newly allocated byte slice.
func MarshalBinary(body []byte) ([]byte, *cryptoerr.Error) {
	var buf bytes.Buffer
	if _, err := Save(&buf, body, CompressionNone); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary reverses MarshalBinary (or Save with any compr_mode).
func UnmarshalBinary(data []byte) ([]byte, *cryptoerr.Error) {
	return Load(bytes.NewReader(data))
}
