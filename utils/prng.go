package utils

import (
	"golang.org/x/crypto/blake2b"

	"github.com/latticecore/engine/cryptoerr"
)

// KeyedPRNG is a deterministic, seekable pseudorandom byte stream keyed by
// a 256-bit seed and backed by BLAKE2Xb's extendable-output mode, for
// reproducible sampling without a system random source; no other package
// of this module calls it (prime search and chain construction are
// deterministic and use no random stream). The
// stream is organized into successive "clock" blocks the size of the
// caller's buffer; SetClock jumps directly to a given block, Clock
// advances to the next one.
type KeyedPRNG struct {
	key   []byte
	clock uint64
}

// NewKeyedPRNG builds a KeyedPRNG from key (any length accepted by
// blake2b's keyed XOF).
func NewKeyedPRNG(key []byte) (*KeyedPRNG, *cryptoerr.Error) {
	if _, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key); err != nil {
		return nil, cryptoerr.Argument("utils: invalid PRNG key: %v", err)
	}
	return &KeyedPRNG{key: append([]byte(nil), key...)}, nil
}

// SetClock jumps the stream to block `clock` and fills buf with that
// block's bytes (len(buf) bytes per block).
func (g *KeyedPRNG) SetClock(buf []byte, clock int) {
	g.clock = uint64(clock)
	g.fillBlock(buf)
}

// Clock advances to the next block (one buffer-length further into the
// stream) and fills buf with it.
func (g *KeyedPRNG) Clock(buf []byte) {
	g.clock++
	g.fillBlock(buf)
}

// fillBlock derives block g.clock of the stream (blocks of len(buf) bytes
// each) by re-seeding the XOF and discarding every preceding block. BLAKE2Xb
// has no native seek; re-deriving per call trades throughput for the exact
// seek semantics SetClock needs, which this engine's parameter-generation
// call sites do not call often enough for that to matter.
func (g *KeyedPRNG) fillBlock(buf []byte) {
	xof, _ := blake2b.NewXOF(blake2b.OutputLengthUnknown, g.key)
	remaining := g.clock * uint64(len(buf))
	var discard [4096]byte
	for remaining > 0 {
		n := uint64(len(discard))
		if remaining < n {
			n = remaining
		}
		xof.Read(discard[:n])
		remaining -= n
	}
	xof.Read(buf)
}
