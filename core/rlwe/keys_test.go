package rlwe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKSwitchKeysBodyRoundTrip(t *testing.T) {
	ctx := newToyContext(t)
	cd := ctx.LastContextData()

	ct0 := NewCiphertext(cd, 2)
	ct0.CorrectionFactor = 1
	ct1 := NewCiphertext(cd, 2)
	ct1.CorrectionFactor = 2
	ct2 := NewCiphertext(cd, 2)
	ct2.CorrectionFactor = 3

	ksk := &KSwitchKeys{
		ParmsID: cd.ParmsID,
		Keys: [][]*Ciphertext{
			{ct0, ct1},
			{ct2},
		},
	}

	body := ksk.BodyBytes()
	got, err := ParseKSwitchKeysBody(ctx, body)
	require.Nil(t, err)

	require.Equal(t, ksk.ParmsID, got.ParmsID)
	require.Len(t, got.Keys, 2)
	require.Len(t, got.Keys[0], 2)
	require.Len(t, got.Keys[1], 1)
	require.Equal(t, uint64(1), got.Keys[0][0].CorrectionFactor)
	require.Equal(t, uint64(2), got.Keys[0][1].CorrectionFactor)
	require.Equal(t, uint64(3), got.Keys[1][0].CorrectionFactor)
}

func TestKSwitchKeysBodyRoundTripEmptyOuter(t *testing.T) {
	ctx := newToyContext(t)
	cd := ctx.LastContextData()

	ksk := &KSwitchKeys{ParmsID: cd.ParmsID, Keys: nil}

	body := ksk.BodyBytes()
	got, err := ParseKSwitchKeysBody(ctx, body)
	require.Nil(t, err)
	require.Empty(t, got.Keys)
}

func TestRelinKeysEmbedsKSwitchKeys(t *testing.T) {
	ctx := newToyContext(t)
	cd := ctx.LastContextData()
	ct := NewCiphertext(cd, 2)

	rk := RelinKeys{KSwitchKeys: KSwitchKeys{
		ParmsID: cd.ParmsID,
		Keys:    [][]*Ciphertext{{ct}},
	}}

	body := rk.BodyBytes()
	got, err := ParseKSwitchKeysBody(ctx, body)
	require.Nil(t, err)
	require.Len(t, got.Keys, 1)
}

func TestGaloisKeysCarriesElementAlongsideKSwitchKeys(t *testing.T) {
	ctx := newToyContext(t)
	cd := ctx.LastContextData()
	ct := NewCiphertext(cd, 2)

	gk := GaloisKeys{
		GaloisElement: 5,
		KSwitchKeys: KSwitchKeys{
			ParmsID: cd.ParmsID,
			Keys:    [][]*Ciphertext{{ct}},
		},
	}

	body := gk.KSwitchKeys.BodyBytes()
	got, err := ParseKSwitchKeysBody(ctx, body)
	require.Nil(t, err)
	require.Equal(t, uint64(5), gk.GaloisElement)
	require.Len(t, got.Keys, 1)
}
