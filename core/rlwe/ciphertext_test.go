package rlwe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newToyContext(t *testing.T) *Context {
	t.Helper()
	p, err := NewParametersFromLiteral(toyBFVLiteral())
	require.Nil(t, err)
	ctx, cerr := NewContext(p, SecurityNone)
	require.Nil(t, cerr)
	return ctx
}

func TestPlaintextBodyRoundTrip(t *testing.T) {
	ctx := newToyContext(t)
	cd := ctx.LastContextData()

	pt := NewPlaintext(cd)
	for i := range pt.Value.Coeffs[0] {
		pt.Value.Coeffs[0][i] = uint64(i + 1)
	}
	pt.Scale = NewScale(2.5)
	pt.IsNTT = true

	body := pt.BodyBytes()
	got, err := ParsePlaintextBody(ctx, body)
	require.Nil(t, err)

	require.Equal(t, pt.ParmsID, got.ParmsID)
	require.Equal(t, pt.Scale, got.Scale)
	require.True(t, got.IsNTT)
	require.True(t, pt.Value.Equal(got.Value))
}

func TestParsePlaintextBodyRejectsUnknownParmsID(t *testing.T) {
	ctx := newToyContext(t)
	cd := ctx.LastContextData()
	pt := NewPlaintext(cd)

	body := pt.BodyBytes()
	body[0] ^= 0xFF

	_, err := ParsePlaintextBody(ctx, body)
	require.NotNil(t, err)
}

func TestCiphertextBodyRoundTrip(t *testing.T) {
	ctx := newToyContext(t)
	cd := ctx.LastContextData()

	ct := NewCiphertext(cd, 2)
	for k, poly := range ct.Value {
		for i := range poly.Coeffs[0] {
			poly.Coeffs[0][i] = uint64(k*100 + i)
		}
	}
	ct.Scale = NewScale(4)
	ct.CorrectionFactor = 7
	ct.IsNTT = false

	body := ct.BodyBytes()
	got, err := ParseCiphertextBody(ctx, body)
	require.Nil(t, err)

	require.Equal(t, ct.ParmsID, got.ParmsID)
	require.Equal(t, ct.Scale, got.Scale)
	require.Equal(t, ct.CorrectionFactor, got.CorrectionFactor)
	require.Equal(t, 2, got.Degree()+1)
	for k := range ct.Value {
		require.True(t, ct.Value[k].Equal(got.Value[k]))
	}
}

func TestCiphertextDegree(t *testing.T) {
	ctx := newToyContext(t)
	ct := NewCiphertext(ctx.LastContextData(), 3)
	require.Equal(t, 2, ct.Degree())
}

func TestParseCiphertextBodyRejectsTruncatedData(t *testing.T) {
	ctx := newToyContext(t)
	ct := NewCiphertext(ctx.LastContextData(), 2)

	body := ct.BodyBytes()
	body = body[:len(body)-1]

	_, err := ParseCiphertextBody(ctx, body)
	require.NotNil(t, err)
}
