package circuit

import (
	"fmt"

	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

type binaryFunc func(c1, c2 *lwe.Ciphertext, pk *lwe.PublicKey) *lwe.Ciphertext

// compile lowers one node to a Gate. Children go through gateBuild, each with
// its own depth counter so that sibling depths do not mix before the max is
// taken.
func (b *build) compile(n *Node, cnt DepthCounter) (Gate, error) {
	deg := n.typ.InDegree()
	if len(n.inputs) != deg {
		return nil, fmt.Errorf("%w: v%d (%s) has %d of %d input gates set", ErrInvalidTopology, n.id, n.typ, len(n.inputs), deg)
	}

	var left, right Gate
	leftDepth, rightDepth := 0, 0
	if deg > 0 {
		var dc Depth
		g, err := b.gateBuild(n.inputs[0], &dc)
		if err != nil {
			return nil, err
		}
		left, leftDepth = g, dc.Value()
	}
	if deg > 1 {
		var dc Depth
		g, err := b.gateBuild(n.inputs[1], &dc)
		if err != nil {
			return nil, err
		}
		right, rightDepth = g, dc.Value()
	}

	// the shallower subtree becomes the left operand; all binary gates are
	// commutative
	if right != nil && leftDepth > rightDepth {
		left, right = right, left
	}

	depth := max(leftDepth, rightDepth)
	n.depth = depth

	base := gateBase{slot: n.id, prog: b.prog, typ: n.typ}
	switch n.typ {
	case NOT:
		cnt.RegisterDepth(depth + n.typ.DepthIncrement())
		return &unaryGate{gateBase: base, op: b.ops.Not, in: left, observers: b.observers}, nil
	case OR:
		cnt.RegisterDepth(depth + n.typ.DepthIncrement())
		return b.binary(base, b.ops.Or, left, right), nil
	case AND:
		cnt.RegisterDepth(depth + n.typ.DepthIncrement())
		return b.binary(base, b.ops.And, left, right), nil
	case NAND:
		cnt.RegisterDepth(depth + n.typ.DepthIncrement())
		return b.binary(base, b.ops.Nand, left, right), nil
	case XOR:
		cnt.RegisterDepth(depth + n.typ.DepthIncrement())
		return b.binary(base, b.ops.Xor, left, right), nil
	case INPUT:
		if n.input < 0 {
			return nil, fmt.Errorf("%w: v%d reads negative input %d", ErrInvalidTopology, n.id, n.input)
		}
		cnt.RegisterDepth(depth)
		return &inputGate{gateBase: base, index: n.input}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidGateType, n.typ)
	}
}

func (b *build) binary(base gateBase, op binaryFunc, left, right Gate) Gate {
	return &binaryGate{
		gateBase:  base,
		op:        op,
		left:      left,
		right:     right,
		observers: b.observers,
	}
}
