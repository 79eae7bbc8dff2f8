package circuit

import (
	"fmt"
)

type buildState uint8

const (
	unvisited buildState = iota
	compiling
	compiled
)

// build holds the per-build memo table: each node is compiled at most once,
// and later references reuse its gate and recorded depth.
type build struct {
	ops       Operators
	observers []Observer
	prog      *program

	state []buildState
	gates []Gate
	depth []int

	// number of nodes compiled, for tests
	nbCompiled int
}

func newBuild(c *Circuit, extra ...Observer) *build {
	n := len(c.nodes)
	observers := append([]Observer(nil), c.observers...)
	return &build{
		ops:       c.ops,
		observers: append(observers, extra...),
		prog:      &program{slots: n},
		state:     make([]buildState, n),
		gates:     make([]Gate, n),
		depth:     make([]int, n),
	}
}

// Build compiles n and every node below it into a Gate, and registers the
// noise depth of n with cnt. Each call is an independent build: nodes shared
// within the DAG are compiled once per call. The gates notify the observers of
// the circuit and extra, which is not recorded on the circuit.
func (n *Node) Build(cnt DepthCounter, extra ...Observer) (Gate, error) {
	b := newBuild(n.circuit, extra...)
	return b.gateBuild(n, cnt)
}

// gateBuild returns the memoized gate of n, compiling it on first use.
func (b *build) gateBuild(n *Node, cnt DepthCounter) (Gate, error) {
	switch b.state[n.id] {
	case compiled:
		cnt.RegisterDepth(b.depth[n.id])
		return b.gates[n.id], nil
	case compiling:
		return nil, fmt.Errorf("%w: cycle through v%d", ErrInvalidTopology, n.id)
	}

	b.state[n.id] = compiling
	var d Depth
	g, err := b.compile(n, &d)
	if err != nil {
		return nil, err
	}
	b.state[n.id] = compiled
	b.gates[n.id] = g
	b.depth[n.id] = d.Value()
	b.nbCompiled++
	cnt.RegisterDepth(d.Value())
	return g, nil
}
