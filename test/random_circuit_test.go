package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	fhecircuit "github.com/PolyhedraZK/FHECircuitCompiler"
	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

const securityParameter = 4

func testRandomCircuit(t *testing.T, conf *randomCircuitConfig, seedL int, seedR int, nCase int, opts ...fhecircuit.CompileOption) {
	scheme, err := lwe.NewScheme(lwe.DefaultConfig())
	require.NoError(t, err)
	kp, err := scheme.GenerateKey(securityParameter)
	require.NoError(t, err)
	a := NewAssert(t, scheme, kp)

	for seed := seedL; seed <= seedR; seed++ {
		conf.seed = seed
		rcg := newRandomCircuitGenerator(conf)
		rc := rcg.circuit(scheme)
		c, err := fhecircuit.Compile(rc.root, append(opts, fhecircuit.WithMaxDepth(conf.maxDepth))...)
		require.NoError(t, err)
		require.LessOrEqual(t, c.NumInputs(), rc.nbInput)

		for i := 1; i <= nCase; i++ {
			bits := rcg.randomAssignment(rc, i)
			expected, err := rc.root.EvaluatePlain(bits)
			require.NoError(t, err)
			a.EvaluatesTo(c, bits, expected)
		}
	}
}

func TestRandomCircuit1(t *testing.T) {
	testRandomCircuit(t, &randomCircuitConfig{
		nbInput:     randRange{2, 6},
		nbGate:      randRange{4, 12},
		maxDepth:    4,
		notPercent:  20,
		orPercent:   40,
		andPercent:  60,
		nandPercent: 80,
	}, 1, 4, 2)
}

// mostly NOT gates over few inputs, deep chains of free gates
func TestRandomCircuit2(t *testing.T) {
	testRandomCircuit(t, &randomCircuitConfig{
		nbInput:     randRange{1, 3},
		nbGate:      randRange{10, 20},
		maxDepth:    2,
		notPercent:  70,
		orPercent:   80,
		andPercent:  90,
		nandPercent: 95,
	}, 11, 13, 2)
}

func TestRandomCircuitParallel(t *testing.T) {
	testRandomCircuit(t, &randomCircuitConfig{
		nbInput:     randRange{4, 8},
		nbGate:      randRange{8, 12},
		maxDepth:    3,
		notPercent:  10,
		orPercent:   30,
		andPercent:  60,
		nandPercent: 80,
	}, 21, 23, 2, fhecircuit.WithParallelism(4))
}

func TestGeneratorIsDeterministic(t *testing.T) {
	conf := &randomCircuitConfig{
		seed:        7,
		nbInput:     randRange{3, 5},
		nbGate:      randRange{5, 10},
		maxDepth:    4,
		notPercent:  20,
		orPercent:   40,
		andPercent:  60,
		nandPercent: 80,
	}
	rcg := newRandomCircuitGenerator(conf)
	a := rcg.circuit(lwe.NewEvaluator())
	b := rcg.circuit(lwe.NewEvaluator())
	sa, err := a.root.Stats()
	require.NoError(t, err)
	sb, err := b.root.Stats()
	require.NoError(t, err)
	require.Equal(t, sa, sb)
	require.Equal(t, a.root.Circuit().Len(), b.root.Circuit().Len())
	require.LessOrEqual(t, sa.Depth, conf.maxDepth)

	for i := 0; i < 3; i++ {
		require.Equal(t, rcg.randomAssignment(a, i), rcg.randomAssignment(b, i))
	}
	require.Equal(t, a.root.String(), b.root.String())
}
