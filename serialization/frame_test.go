package serialization

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveWritesSixteenByteHeader(t *testing.T) {
	body := []byte("hello ring element")
	var buf bytes.Buffer

	n, err := Save(&buf, body, CompressionNone)
	require.Nil(t, err)
	require.Equal(t, int64(16+len(body)), n)

	out := buf.Bytes()
	require.Equal(t, byte(0x5E), out[0])
	require.Equal(t, byte(0xA1), out[1])
	require.Equal(t, byte(16), out[2])
	require.Equal(t, VersionMajor, out[3])
	require.Equal(t, VersionMinor, out[4])
	require.Equal(t, CompressionNone, out[5])
	require.Equal(t, byte(0), out[6])
	require.Equal(t, byte(0), out[7])
}

func TestSaveLoadRoundTripUncompressed(t *testing.T) {
	body := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	var buf bytes.Buffer

	_, err := Save(&buf, body, CompressionNone)
	require.Nil(t, err)

	got, err := Load(&buf)
	require.Nil(t, err)
	require.Equal(t, body, got)
}

func TestSaveLoadRoundTripDeflate(t *testing.T) {
	body := bytes.Repeat([]byte("abcdefgh"), 256)
	var buf bytes.Buffer

	n, err := Save(&buf, body, CompressionDeflate)
	require.Nil(t, err)
	require.Less(t, n, int64(16+len(body)), "deflate should shrink a repetitive body")

	got, err := Load(&buf)
	require.Nil(t, err)
	require.Equal(t, body, got)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	body := []byte("x")
	var buf bytes.Buffer
	_, err := Save(&buf, body, CompressionNone)
	require.Nil(t, err)

	corrupted := buf.Bytes()
	corrupted[0] ^= 0xFF

	_, lerr := Load(bytes.NewReader(corrupted))
	require.NotNil(t, lerr)
	require.Equal(t, "magic", lerr.Field)
}

func TestLoadRejectsTruncatedBody(t *testing.T) {
	body := []byte("some body longer than zero bytes")
	var buf bytes.Buffer
	_, err := Save(&buf, body, CompressionNone)
	require.Nil(t, err)

	truncated := buf.Bytes()[:20]
	_, lerr := Load(bytes.NewReader(truncated))
	require.NotNil(t, lerr)
}

func TestSaveRejectsUnknownCompressionMode(t *testing.T) {
	var buf bytes.Buffer
	_, err := Save(&buf, []byte("x"), 7)
	require.NotNil(t, err)
}

func TestMarshalUnmarshalBinaryRoundTrip(t *testing.T) {
	body := []byte("parameter literal bytes")

	data, err := MarshalBinary(body)
	require.Nil(t, err)
	require.Equal(t, uint64(len(data)), uint64(16+len(body)))

	got, err := UnmarshalBinary(data)
	require.Nil(t, err)
	require.Equal(t, body, got)
}
