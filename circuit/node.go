package circuit

import (
	"fmt"
)

// Node is one vertex of the circuit DAG.
// A node must get its children through SetGates (or its input index through
// SetInputIndex for INPUT nodes) before it is built.
type Node struct {
	circuit *Circuit
	id      int
	typ     GateType
	inputs  []*Node
	input   int
	// depth is max(children depths) as of the last build; -1 before.
	depth int
}

func (n *Node) ID() int {
	return n.id
}

func (n *Node) Type() GateType {
	return n.typ
}

// Inputs returns the children of n.
func (n *Node) Inputs() []*Node {
	return append([]*Node(nil), n.inputs...)
}

// InputIndex is the position read from the input array by an INPUT node.
func (n *Node) InputIndex() int {
	return n.input
}

// Depth is the maximum depth of the children of n computed by the last
// build, or -1 if n was never built. It is a diagnostic value only.
func (n *Node) Depth() int {
	return n.depth
}

// SetGates assigns the children of n. The number of children must match the
// in-degree of the node type, and INPUT nodes take no children at all.
func (n *Node) SetGates(gates ...*Node) error {
	if n.typ == INPUT {
		return fmt.Errorf("%w: cannot define gates as input on an input gate", ErrInvalidTopology)
	}
	if len(gates) != n.typ.InDegree() {
		return fmt.Errorf("%w: %s gate takes %d inputs, got %d", ErrInvalidTopology, n.typ, n.typ.InDegree(), len(gates))
	}
	for _, g := range gates {
		if g == nil {
			return fmt.Errorf("%w: nil input gate", ErrInvalidTopology)
		}
		if g.circuit != n.circuit {
			return fmt.Errorf("%w: input gate belongs to another circuit", ErrInvalidTopology)
		}
	}
	n.inputs = append([]*Node(nil), gates...)
	return nil
}

// SetInputIndex selects the ciphertext read by an INPUT node. It has no
// effect on the evaluation of other node types.
func (n *Node) SetInputIndex(index int) {
	n.input = index
}

func (n *Node) String() string {
	if n.typ == INPUT {
		return fmt.Sprintf("v%d = INPUT[%d]", n.id, n.input)
	}
	s := fmt.Sprintf("v%d = %s(", n.id, n.typ)
	for i, x := range n.inputs {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("v%d", x.id)
	}
	return s + ")"
}

// Circuit returns the circuit n belongs to.
func (n *Node) Circuit() *Circuit {
	return n.circuit
}
