package circuit

import (
	"fmt"

	"github.com/PolyhedraZK/FHECircuitCompiler/utils"
)

// GateType is the closed set of node kinds of a boolean circuit.
type GateType int

const (
	NOT GateType = iota
	OR
	AND
	NAND
	XOR
	INPUT
)

// InDegree is the number of children a node of this type takes.
func (t GateType) InDegree() int {
	switch t {
	case NOT:
		return 1
	case OR, AND, NAND, XOR:
		return 2
	default:
		return 0
	}
}

// DepthIncrement is the noise depth a gate of this type adds on top of its
// deepest child.
func (t GateType) DepthIncrement() int {
	switch t {
	case NOT:
		return utils.DepthOfNotGate
	case OR, AND, NAND:
		return utils.DepthOfMulGate
	case XOR:
		return utils.DepthOfXorGate
	default:
		return utils.DepthOfInput
	}
}

func (t GateType) Valid() bool {
	return t >= NOT && t <= INPUT
}

func (t GateType) String() string {
	switch t {
	case NOT:
		return "NOT"
	case OR:
		return "OR"
	case AND:
		return "AND"
	case NAND:
		return "NAND"
	case XOR:
		return "XOR"
	case INPUT:
		return "INPUT"
	}
	return fmt.Sprintf("GateType(%d)", int(t))
}

// Apply evaluates the gate on plaintext bits. b is ignored by NOT.
func (t GateType) Apply(a, b bool) bool {
	switch t {
	case NOT:
		return !a
	case OR:
		return a || b
	case AND:
		return a && b
	case NAND:
		return !(a && b)
	case XOR:
		return a != b
	}
	panic("Apply on " + t.String())
}
