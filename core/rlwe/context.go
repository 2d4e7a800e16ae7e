package rlwe

import (
	"math/big"

	"github.com/latticecore/engine/cryptoerr"
	"github.com/latticecore/engine/ring"
	"github.com/latticecore/engine/rns"
	"github.com/latticecore/engine/serialization"
)

// ContextData is one node of the modulus-switching chain (spec §3, §4.5):
// the frozen parameters, qualifiers, and precomputation tables for a single
// chain level. Built by Context's constructor and immutable thereafter.
type ContextData struct {
	Parms      Parameters
	ParmsID    serialization.ParmsID
	Qualifiers Qualifiers
	RnsTool    *rns.Tool

	TotalCoeffModulus    *ring.Int
	CoeffDivPlainModulus []uint64

	PlainUpperHalfThreshold uint64
	PlainUpperHalfIncrement []uint64

	UpperHalfThreshold *ring.Int
	UpperHalfIncrement []uint64

	ChainIndex int

	prev *ContextData
	next *ContextData
}

// Prev returns the node one level up the chain (toward the key level), or
// nil at the head.
func (c *ContextData) Prev() *ContextData { return c.prev }

// Next returns the node one level down the chain (toward the tail), or nil
// at the tail.
func (c *ContextData) Next() *ContextData { return c.next }

// Context owns the full modulus-switching chain built from a key-level
// Parameters (spec §4.5): a linked list of ContextData from
// KeyContextData (full prime list) down to LastContextData (chain_index 0),
// indexed by parms_id for O(1) lookup.
type Context struct {
	security SecurityLevel

	key   *ContextData
	first *ContextData
	last  *ContextData

	byParmsID map[serialization.ParmsID]*ContextData
}

// NewContext validates keyParms and builds the full chain, dropping one
// prime at a time until the trimmed parameter set becomes invalid (§4.5
// step 2). The head node (KeyContextData) carries the full prime list,
// including the "special" prime reserved for key-switching; FirstContextData
// is the head's immediate successor with that prime dropped.
func NewContext(keyParms Parameters, security SecurityLevel) (*Context, *cryptoerr.Error) {
	ctx := &Context{
		security:  security,
		byParmsID: make(map[serialization.ParmsID]*ContextData),
	}

	head, err := newContextData(keyParms, security, len(keyParms.coeffModulus)-1)
	if err != nil {
		return nil, err
	}
	ctx.key = head
	if err := ctx.register(head); err != nil {
		return nil, err
	}

	cur := head
	p := keyParms
	for {
		dropped, ok := p.DroppedLast()
		if !ok {
			break
		}
		node, err := newContextData(dropped, security, cur.ChainIndex-1)
		if err != nil {
			break
		}
		node.prev = cur
		cur.next = node
		if err := ctx.register(node); err != nil {
			return nil, err
		}
		cur = node
		p = dropped
	}

	ctx.last = cur
	if ctx.key != ctx.last {
		ctx.first = ctx.key.next
	} else {
		ctx.first = ctx.key
	}

	return ctx, nil
}

func newContextData(p Parameters, security SecurityLevel, chainIndex int) (*ContextData, *cryptoerr.Error) {
	q := ComputeQualifiers(p, security)
	if !q.ParametersSet {
		return nil, cryptoerr.Crypto("parameters are not admissible at chain_index %d", chainIndex)
	}

	parmsID, herr := serialization.ComputeParmsID(uint8(p.scheme), uint64(p.N()), p.plainModulus, p.coeffModulus)
	if herr != nil {
		return nil, herr
	}

	tool, terr := rns.NewTool(p.coeffModulus, p.coeffModulus)
	if terr != nil {
		return nil, terr
	}

	totalQ := productBig(p.coeffModulus)

	var coeffDivPlain []uint64
	var plainUpperHalfThreshold uint64
	var plainUpperHalfIncrement []uint64
	if p.plainModulus != 0 {
		t := p.plainModulus
		plainUpperHalfThreshold = (t + 1) / 2
		plainUpperHalfIncrement = make([]uint64, len(p.coeffModulus))
		coeffDivPlain = make([]uint64, len(p.coeffModulus))

		floorQDivT := new(big.Int).Div(&totalQ.Value, new(big.Int).SetUint64(t))
		for i, qi := range p.coeffModulus {
			plainUpperHalfIncrement[i] = qi - t%qi
			coeffDivPlain[i] = modBig(floorQDivT, qi)
		}
	}

	upperHalfThreshold := halfRoundUp(totalQ)
	upperHalfIncrement := make([]uint64, len(p.coeffModulus))
	for i, qi := range p.coeffModulus {
		upperHalfIncrement[i] = modBig(&totalQ.Value, qi)
	}

	return &ContextData{
		Parms:                   p,
		ParmsID:                 parmsID,
		Qualifiers:              q,
		RnsTool:                 tool,
		TotalCoeffModulus:       totalQ,
		CoeffDivPlainModulus:    coeffDivPlain,
		PlainUpperHalfThreshold: plainUpperHalfThreshold,
		PlainUpperHalfIncrement: plainUpperHalfIncrement,
		UpperHalfThreshold:      upperHalfThreshold,
		UpperHalfIncrement:      upperHalfIncrement,
		ChainIndex:              chainIndex,
	}, nil
}

func (ctx *Context) register(node *ContextData) *cryptoerr.Error {
	if _, exists := ctx.byParmsID[node.ParmsID]; exists {
		return cryptoerr.Crypto("chain construction produced a duplicate parms_id at chain_index %d", node.ChainIndex)
	}
	ctx.byParmsID[node.ParmsID] = node
	return nil
}

// KeyContextData returns the chain's head: the full prime list including
// the special key-switching prime.
func (ctx *Context) KeyContextData() *ContextData { return ctx.key }

// FirstContextData returns the head's immediate successor (the special
// prime dropped).
func (ctx *Context) FirstContextData() *ContextData { return ctx.first }

// LastContextData returns the chain's tail (chain_index 0).
func (ctx *Context) LastContextData() *ContextData { return ctx.last }

// GetContextData looks up a node by parms_id in O(1).
func (ctx *Context) GetContextData(id serialization.ParmsID) (*ContextData, bool) {
	node, ok := ctx.byParmsID[id]
	return node, ok
}

// modBig returns x mod q as a uint64, for q < 2^62.
func modBig(x *big.Int, q uint64) uint64 {
	return new(big.Int).Mod(x, new(big.Int).SetUint64(q)).Uint64()
}

// halfRoundUp returns ceil(x/2) as a new Int.
func halfRoundUp(x *ring.Int) *ring.Int {
	sum := new(big.Int).Add(&x.Value, big.NewInt(1))
	out := new(ring.Int)
	out.Value.Rsh(sum, 1)
	return out
}
