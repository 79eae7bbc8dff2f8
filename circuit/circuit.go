// Package circuit compiles boolean circuits into homomorphic evaluators.
//
// A Circuit is an arena of nodes. Each node is a gate (NOT, OR, AND, NAND,
// XOR) over other nodes, or an INPUT reading one ciphertext of the caller's
// input array. Nodes may be shared by several parents, forming a DAG.
// Building a node compiles it and everything below it into a Gate, exactly
// once per node per build, and reports the noise depth of the result.
package circuit

import (
	"fmt"

	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

// Operators is the homomorphic gate set the compiled gates call into.
// *lwe.Scheme and lwe.Evaluator implement it.
type Operators interface {
	Not(c *lwe.Ciphertext, pk *lwe.PublicKey) *lwe.Ciphertext
	Or(c1, c2 *lwe.Ciphertext, pk *lwe.PublicKey) *lwe.Ciphertext
	And(c1, c2 *lwe.Ciphertext, pk *lwe.PublicKey) *lwe.Ciphertext
	Nand(c1, c2 *lwe.Ciphertext, pk *lwe.PublicKey) *lwe.Ciphertext
	Xor(c1, c2 *lwe.Ciphertext, pk *lwe.PublicKey) *lwe.Ciphertext
}

// Circuit owns the nodes of one circuit and the observers notified when its
// compiled gates are evaluated.
type Circuit struct {
	ops       Operators
	nodes     []*Node
	observers []Observer
}

func New(ops Operators) *Circuit {
	return &Circuit{ops: ops}
}

// NewGate creates an unconnected node of type t.
func (c *Circuit) NewGate(t GateType) *Node {
	n := &Node{
		circuit: c,
		id:      len(c.nodes),
		typ:     t,
		depth:   -1,
	}
	c.nodes = append(c.nodes, n)
	return n
}

// AddObserver registers o with every gate built after the call.
func (c *Circuit) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

// Len returns the number of nodes of the circuit.
func (c *Circuit) Len() int {
	return len(c.nodes)
}

// Input returns a new INPUT node reading inputs[index].
func (c *Circuit) Input(index int) *Node {
	n := c.NewGate(INPUT)
	n.SetInputIndex(index)
	return n
}

func (c *Circuit) Not(x *Node) *Node {
	return c.gate(NOT, x)
}

func (c *Circuit) Or(a, b *Node) *Node {
	return c.gate(OR, a, b)
}

func (c *Circuit) And(a, b *Node) *Node {
	return c.gate(AND, a, b)
}

func (c *Circuit) Nand(a, b *Node) *Node {
	return c.gate(NAND, a, b)
}

func (c *Circuit) Xor(a, b *Node) *Node {
	return c.gate(XOR, a, b)
}

// gate panics when the children belong to another circuit, like gnark's
// frontend.API does on misuse.
func (c *Circuit) gate(t GateType, children ...*Node) *Node {
	n := c.NewGate(t)
	if err := n.SetGates(children...); err != nil {
		panic(fmt.Sprintf("%s gate: %v", t, err))
	}
	return n
}
