package cryptoerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessageIncludesKindAndField(t *testing.T) {
	e := Corrupt("coeff_count", "mismatch: got %d want %d", 3, 4)
	require.Equal(t, `corrupt: mismatch: got 3 want 4 (field "coeff_count")`, e.Error())

	e2 := Argument("bad value %d", 5)
	require.Equal(t, "argument: bad value 5", e2.Error())
}

func TestKindStringNames(t *testing.T) {
	require.Equal(t, "argument", KindArgument.String())
	require.Equal(t, "state", KindState.String())
	require.Equal(t, "resource", KindResource.String())
	require.Equal(t, "corrupt", KindCorrupt.String())
	require.Equal(t, "crypto", KindCrypto.String())
}

func TestIsMatchesOnKindOnly(t *testing.T) {
	a := Crypto("parameters not admissible")
	b := Crypto("a different message")
	require.True(t, errors.Is(a, b))

	c := State("wrong kind")
	require.False(t, errors.Is(a, c))
}

func TestConstructorsSetExpectedKind(t *testing.T) {
	require.Equal(t, KindArgument, Argument("x").Kind)
	require.Equal(t, KindState, State("x").Kind)
	require.Equal(t, KindResource, Resource("x").Kind)
	require.Equal(t, KindCrypto, Crypto("x").Kind)

	c := Corrupt("field_name", "x")
	require.Equal(t, KindCorrupt, c.Kind)
	require.Equal(t, "field_name", c.Field)
}
