package test

import (
	"math/rand"

	"github.com/PolyhedraZK/FHECircuitCompiler/circuit"
)

type randomCircuitConfig struct {
	seed    int
	nbInput randRange
	nbGate  randRange
	// no gate may exceed this noise depth
	maxDepth int
	// cumulative thresholds out of 100, XOR takes the rest
	notPercent  int
	orPercent   int
	andPercent  int
	nandPercent int
}

type randRange struct {
	l int
	r int
}

func (rr *randRange) sample(r *rand.Rand) int {
	return r.Intn(rr.r-rr.l+1) + rr.l
}

type randomCircuit struct {
	root    *circuit.Node
	nbInput int
}

type randomCircuitGenerator struct {
	conf *randomCircuitConfig
}

func newRandomCircuitGenerator(conf *randomCircuitConfig) *randomCircuitGenerator {
	return &randomCircuitGenerator{conf: conf}
}

func (rcg *randomCircuitGenerator) pickType(r *rand.Rand) circuit.GateType {
	op := r.Intn(100)
	switch {
	case op < rcg.conf.notPercent:
		return circuit.NOT
	case op < rcg.conf.orPercent:
		return circuit.OR
	case op < rcg.conf.andPercent:
		return circuit.AND
	case op < rcg.conf.nandPercent:
		return circuit.NAND
	}
	return circuit.XOR
}

// circuit generates a random circuit over ops. Gates pick their children
// among all earlier nodes, so nodes are shared by several parents. The
// behavior is deterministic based on the seed.
func (rcg *randomCircuitGenerator) circuit(ops circuit.Operators) *randomCircuit {
	r := rand.New(rand.NewSource(int64(rcg.conf.seed)))
	c := circuit.New(ops)

	nbInput := rcg.conf.nbInput.sample(r)
	vars := make([]*circuit.Node, 0, nbInput)
	depth := make([]int, 0, nbInput)
	for i := 0; i < nbInput; i++ {
		vars = append(vars, c.Input(i))
		depth = append(depth, 0)
	}

	m := rcg.conf.nbGate.sample(r)
	for len(vars) < nbInput+m {
		t := rcg.pickType(r)
		x := r.Intn(len(vars))
		if t == circuit.NOT {
			vars = append(vars, c.Not(vars[x]))
			depth = append(depth, depth[x])
			continue
		}
		y := r.Intn(len(vars))
		d := max(depth[x], depth[y]) + t.DepthIncrement()
		if d > rcg.conf.maxDepth {
			continue
		}
		n := c.NewGate(t)
		if err := n.SetGates(vars[x], vars[y]); err != nil {
			panic(err)
		}
		vars = append(vars, n)
		depth = append(depth, d)
	}
	return &randomCircuit{root: vars[len(vars)-1], nbInput: nbInput}
}

func (rcg *randomCircuitGenerator) randomAssignment(rc *randomCircuit, subSeed int) []bool {
	r := rand.New(rand.NewSource(int64(subSeed<<48) | int64(rcg.conf.seed)))
	bits := make([]bool, rc.nbInput)
	for i := range bits {
		bits[i] = r.Intn(2) == 1
	}
	return bits
}
