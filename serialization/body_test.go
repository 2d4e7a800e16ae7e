package serialization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(7)
	w.WriteUint64(1 << 40)
	w.WriteFloat64(3.5)
	w.WriteUint64Slice([]uint64{1, 2, 3})
	w.WriteBytes([]byte{0xAA, 0xBB})

	r := NewReader(w.Bytes())

	u8, err := r.ReadUint8()
	require.Nil(t, err)
	require.Equal(t, uint8(7), u8)

	u64, err := r.ReadUint64()
	require.Nil(t, err)
	require.Equal(t, uint64(1<<40), u64)

	f64, err := r.ReadFloat64()
	require.Nil(t, err)
	require.Equal(t, 3.5, f64)

	slice, err := r.ReadUint64Slice()
	require.Nil(t, err)
	require.Equal(t, []uint64{1, 2, 3}, slice)

	raw, err := r.ReadBytes(2)
	require.Nil(t, err)
	require.Equal(t, []byte{0xAA, 0xBB}, raw)

	require.Equal(t, 0, r.Remaining())
}

func TestReaderRejectsShortInput(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	_, err := r.ReadUint64()
	require.NotNil(t, err)
	require.Equal(t, "body", err.Field)
}
