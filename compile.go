// Package fhecircuit compiles boolean circuits into homomorphic evaluators
// over LWE ciphertexts.
package fhecircuit

import (
	"context"
	"errors"
	"fmt"

	"github.com/consensys/gnark/logger"

	"github.com/PolyhedraZK/FHECircuitCompiler/circuit"
	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

var (
	ErrInvalidOption = errors.New("invalid compile option")
	ErrTooDeep       = errors.New("circuit exceeds the maximum depth")
)

// CompileResult is a compiled circuit ready to be evaluated over ciphertexts.
type CompileResult struct {
	gate   circuit.Gate
	depth  int
	stats  circuit.Stats
	config CompileConfig
}

// Compile builds the circuit rooted at root. The returned result evaluates
// the circuit over ciphertexts and reports its noise depth.
func Compile(root *circuit.Node, opts ...CompileOption) (*CompileResult, error) {
	var config CompileConfig
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	stats, err := root.Stats()
	if err != nil {
		return nil, err
	}
	if config.MaxDepth > 0 && stats.Depth > config.MaxDepth {
		return nil, fmt.Errorf("%w: depth %d > %d", ErrTooDeep, stats.Depth, config.MaxDepth)
	}

	var depth circuit.Depth
	g, err := root.Build(&depth, config.Observers...)
	if err != nil {
		return nil, err
	}

	log := logger.Logger()
	log.Info().
		Int("nbGates", stats.NbTotGates-stats.NbInputNodes).
		Int("nbInput", stats.NbInputNodes).
		Int("nbAnd", stats.NbGates[circuit.AND]+stats.NbGates[circuit.NAND]).
		Int("nbOr", stats.NbGates[circuit.OR]).
		Int("nbXor", stats.NbGates[circuit.XOR]).
		Int("nbNot", stats.NbGates[circuit.NOT]).
		Int("depth", depth.Value()).
		Msg("compiled")

	return &CompileResult{
		gate:   g,
		depth:  depth.Value(),
		stats:  stats,
		config: config,
	}, nil
}

func (c *CompileResult) Gate() circuit.Gate {
	return c.gate
}

// Depth is the noise depth of the circuit, to be matched against the key
// parameters.
func (c *CompileResult) Depth() int {
	return c.depth
}

// NumInputs is the minimum length of the input array of Evaluate.
func (c *CompileResult) NumInputs() int {
	return c.stats.MaxInputIndex + 1
}

func (c *CompileResult) Stats() circuit.Stats {
	return c.stats
}

// Evaluate runs the circuit over inputs. It fails when inputs is too short
// or holds ciphertexts of other parameters than pk.
func (c *CompileResult) Evaluate(pk *lwe.PublicKey, inputs []*lwe.Ciphertext) (*lwe.Ciphertext, error) {
	if len(inputs) < c.NumInputs() {
		return nil, fmt.Errorf("%w: %d inputs given, %d read", circuit.ErrInputIndex, len(inputs), c.NumInputs())
	}
	for i, in := range inputs {
		if in == nil {
			return nil, fmt.Errorf("%w: input %d is nil", circuit.ErrInputIndex, i)
		}
		if !in.Params.Equal(pk.Params) {
			return nil, fmt.Errorf("%w: input %d was encrypted under other parameters", lwe.ErrInvalidConfig, i)
		}
	}
	if c.config.Parallelism > 0 {
		return circuit.EvaluateParallel(context.Background(), c.gate, pk, inputs, c.config.Parallelism)
	}
	return c.gate.Evaluate(pk, inputs), nil
}
