// Package sampling implements secure sampling of bytes, bits and field elements.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark/constraint"
)

// Field is the part of a field engine the samplers need.
type Field interface {
	FromInterface(i interface{}) constraint.Element
	Neg(a constraint.Element) constraint.Element
	Field() *big.Int
	FieldBitLen() int
}

const bufferSize = 1024

// Sampler draws values from a PRNG through a small internal buffer.
// A Sampler is not safe for concurrent use; create one per goroutine.
type Sampler struct {
	prng PRNG
	buf  []byte
	pos  int
}

func NewSampler(prng PRNG) *Sampler {
	return &Sampler{prng: prng}
}

func (s *Sampler) fill() error {
	if s.buf == nil {
		s.buf = make([]byte, bufferSize)
	}
	if _, err := io.ReadFull(s.prng, s.buf); err != nil {
		return fmt.Errorf("read prng: %w", err)
	}
	s.pos = 0
	return nil
}

// Uint64 returns 64 uniformly random bits.
func (s *Sampler) Uint64() (uint64, error) {
	if s.buf == nil || s.pos+8 > len(s.buf) {
		if err := s.fill(); err != nil {
			return 0, err
		}
	}
	x := binary.LittleEndian.Uint64(s.buf[s.pos:])
	s.pos += 8
	return x, nil
}

// Below returns a uniform integer in [0, bound) by rejection sampling.
func (s *Sampler) Below(bound uint64) (uint64, error) {
	if bound == 0 {
		return 0, fmt.Errorf("empty range")
	}
	mask := uint64(1)<<bits.Len64(bound) - 1
	for {
		x, err := s.Uint64()
		if err != nil {
			return 0, err
		}
		if x &= mask; x < bound {
			return x, nil
		}
	}
}

// Uniform returns a uniform element of f.
func (s *Sampler) Uniform(f Field) (constraint.Element, error) {
	if f.FieldBitLen() < 64 {
		x, err := s.Below(f.Field().Uint64())
		if err != nil {
			return constraint.Element{}, err
		}
		return f.FromInterface(x), nil
	}
	x, err := rand.Int(s.prng, f.Field())
	if err != nil {
		return constraint.Element{}, fmt.Errorf("read prng: %w", err)
	}
	return f.FromInterface(x), nil
}

// Bounded returns an element of f whose centered value is uniform in [-bound, bound].
func (s *Sampler) Bounded(f Field, bound uint64) (constraint.Element, error) {
	x, err := s.Below(2*bound + 1)
	if err != nil {
		return constraint.Element{}, err
	}
	if x <= bound {
		return f.FromInterface(x), nil
	}
	return f.Neg(f.FromInterface(x - bound)), nil
}

// Bits returns a bitset of length n with uniformly random bits.
func (s *Sampler) Bits(n uint) (*bitset.BitSet, error) {
	words := make([]uint64, (n+63)/64)
	for i := range words {
		x, err := s.Uint64()
		if err != nil {
			return nil, err
		}
		words[i] = x
	}
	if r := n % 64; r != 0 {
		words[len(words)-1] &= uint64(1)<<r - 1
	}
	return bitset.FromWithLength(n, words), nil
}
