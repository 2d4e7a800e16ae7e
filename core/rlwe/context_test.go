package rlwe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewContextBuildsChainFromKeyToLast(t *testing.T) {
	p, err := NewParametersFromLiteral(toyBFVLiteral())
	require.Nil(t, err)

	ctx, cerr := NewContext(p, SecurityNone)
	require.Nil(t, cerr)

	key := ctx.KeyContextData()
	require.NotNil(t, key)
	require.Equal(t, 1, key.ChainIndex)
	require.Len(t, key.Parms.CoeffModulus(), 2)

	last := ctx.LastContextData()
	require.NotNil(t, last)
	require.Equal(t, 0, last.ChainIndex)
	require.Len(t, last.Parms.CoeffModulus(), 1)

	require.Same(t, last, ctx.FirstContextData())
	require.Same(t, key, last.Prev())
	require.Same(t, last, key.Next())
	require.Nil(t, key.Prev())
	require.Nil(t, last.Next())
}

func TestNewContextRegistersEveryNodeByParmsID(t *testing.T) {
	p, err := NewParametersFromLiteral(toyBFVLiteral())
	require.Nil(t, err)

	ctx, cerr := NewContext(p, SecurityNone)
	require.Nil(t, cerr)

	key := ctx.KeyContextData()
	found, ok := ctx.GetContextData(key.ParmsID)
	require.True(t, ok)
	require.Same(t, key, found)

	last := ctx.LastContextData()
	found, ok = ctx.GetContextData(last.ParmsID)
	require.True(t, ok)
	require.Same(t, last, found)

	require.NotEqual(t, key.ParmsID, last.ParmsID)
}

func TestNewContextPlaintextHalvesAreComputedOnlyForNonZeroPlainModulus(t *testing.T) {
	p, err := NewParametersFromLiteral(toyBFVLiteral())
	require.Nil(t, err)

	ctx, cerr := NewContext(p, SecurityNone)
	require.Nil(t, cerr)

	last := ctx.LastContextData()
	require.Equal(t, uint64(9), last.PlainUpperHalfThreshold)
	require.Len(t, last.PlainUpperHalfIncrement, 1)
	require.Len(t, last.CoeffDivPlainModulus, 1)
}

func TestNewContextSkipsPlaintextHalvesForCKKS(t *testing.T) {
	lit := ParametersLiteral{
		Scheme:       CKKS,
		LogN:         3,
		CoeffModulus: []uint64{113, 97},
	}
	p, err := NewParametersFromLiteral(lit)
	require.Nil(t, err)

	ctx, cerr := NewContext(p, SecurityNone)
	require.Nil(t, cerr)

	require.Nil(t, ctx.KeyContextData().CoeffDivPlainModulus)
	require.Equal(t, uint64(0), ctx.KeyContextData().PlainUpperHalfThreshold)
}
