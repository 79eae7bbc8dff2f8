// Package lwe implements a GSW-style LWE encryption scheme for single bits,
// together with the homomorphic boolean gates used by the circuit evaluator.
//
// With secret s = (-t, 1) and public matrix A satisfying sᵀA = eᵀ, a bit μ is
// encrypted as C = A·R + μ·G where R is a random binary matrix and G the
// gadget matrix. Gates are built from G⁻¹ (bit decomposition):
//
//	NOT  a    = G - A
//	AND  a, b = A·G⁻¹(B)
//	NAND a, b = G - AND(a, b)
//	OR   a, b = A + B - AND(a, b)
//	XOR  a, b = A + B - 2·AND(a, b)
package lwe

import (
	"errors"
	"fmt"

	"github.com/PolyhedraZK/FHECircuitCompiler/field"
	"github.com/PolyhedraZK/FHECircuitCompiler/field/m31"
	"github.com/PolyhedraZK/FHECircuitCompiler/sampling"
)

var (
	ErrInvalidConfig = errors.New("invalid lwe configuration")
	ErrMalformed     = errors.New("malformed lwe data")
)

// Config selects the modulus, the noise distribution and the randomness
// source of a Scheme.
type Config struct {
	// Field is the engine of Z_q.
	Field field.Field
	// NoiseBound is B: LWE errors are uniform in [-B, B].
	NoiseBound uint64
	// PRNG feeds key generation and encryption.
	PRNG sampling.PRNG
}

// DefaultConfig uses q = 2^31-1, B = 1 and the operating system's CSPRNG.
func DefaultConfig() Config {
	return Config{
		Field:      &m31.Field{},
		NoiseBound: 1,
		PRNG:       sampling.NewPRNG(),
	}
}

func (c Config) validate() error {
	if c.Field == nil {
		return fmt.Errorf("%w: missing field", ErrInvalidConfig)
	}
	if c.PRNG == nil {
		return fmt.Errorf("%w: missing prng", ErrInvalidConfig)
	}
	if c.Field.Field().BitLen() < 4 {
		return fmt.Errorf("%w: modulus %v too small", ErrInvalidConfig, c.Field.Field())
	}
	return nil
}

// Parameters are the dimensions derived from a security parameter k.
type Parameters struct {
	field field.Field
	// k is the LWE dimension
	k int
	// l is bitLength(q)
	l int
}

func newParameters(f field.Field, k int) Parameters {
	return Parameters{field: f, k: k, l: f.Field().BitLen()}
}

func (p Parameters) Field() field.Field { return p.field }

// K is the LWE dimension, i.e. the security parameter.
func (p Parameters) K() int { return p.k }

// N is the number of rows of keys and ciphertexts, k+1.
func (p Parameters) N() int { return p.k + 1 }

// L is the number of bits of q.
func (p Parameters) L() int { return p.l }

// Width is the number of columns of a ciphertext, N·L.
func (p Parameters) Width() int { return p.N() * p.l }

// M is the number of LWE samples in the public key.
func (p Parameters) M() int { return p.Width() }

// decryptionColumn is the column of G whose last-row entry is 2^(L-2).
func (p Parameters) decryptionColumn() int {
	return (p.N()-1)*p.l + p.l - 2
}

func (p Parameters) Equal(o Parameters) bool {
	return p.k == o.k && p.l == o.l && p.field.Field().Cmp(o.field.Field()) == 0
}
