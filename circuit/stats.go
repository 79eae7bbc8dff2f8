package circuit

import (
	"fmt"
	"strings"
)

// Stats summarizes the DAG reachable from a node.
type Stats struct {
	NbGates       map[GateType]int
	NbInputNodes  int
	NbTotGates    int
	MaxInputIndex int
	// Depth is the noise depth the root would report when built.
	Depth int
}

func (s Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "gates=%d inputs=%d depth=%d", s.NbTotGates, s.NbInputNodes, s.Depth)
	for t := NOT; t < INPUT; t++ {
		if s.NbGates[t] > 0 {
			fmt.Fprintf(&sb, " %s=%d", t, s.NbGates[t])
		}
	}
	return sb.String()
}

// Stats walks every node reachable from n once. It fails like Build on
// unset children, cycles and unknown gate types.
func (n *Node) Stats() (Stats, error) {
	s := Stats{NbGates: make(map[GateType]int), MaxInputIndex: -1}
	state := make([]buildState, len(n.circuit.nodes))
	depth := make([]int, len(n.circuit.nodes))

	var visit func(x *Node) (int, error)
	visit = func(x *Node) (int, error) {
		switch state[x.id] {
		case compiled:
			return depth[x.id], nil
		case compiling:
			return 0, fmt.Errorf("%w: cycle through v%d", ErrInvalidTopology, x.id)
		}
		if !x.typ.Valid() {
			return 0, fmt.Errorf("%w: %v", ErrInvalidGateType, x.typ)
		}
		if len(x.inputs) != x.typ.InDegree() {
			return 0, fmt.Errorf("%w: v%d (%s) has %d of %d input gates set", ErrInvalidTopology, x.id, x.typ, len(x.inputs), x.typ.InDegree())
		}
		state[x.id] = compiling
		d := 0
		for _, in := range x.inputs {
			di, err := visit(in)
			if err != nil {
				return 0, err
			}
			d = max(d, di)
		}
		state[x.id] = compiled
		depth[x.id] = d + x.typ.DepthIncrement()

		s.NbTotGates++
		if x.typ == INPUT {
			s.NbInputNodes++
			s.MaxInputIndex = max(s.MaxInputIndex, x.input)
		} else {
			s.NbGates[x.typ]++
		}
		return depth[x.id], nil
	}

	d, err := visit(n)
	if err != nil {
		return Stats{}, err
	}
	s.Depth = d
	return s, nil
}
