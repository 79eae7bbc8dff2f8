package sampling

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/FHECircuitCompiler/field"
	"github.com/PolyhedraZK/FHECircuitCompiler/field/bn254"
	"github.com/PolyhedraZK/FHECircuitCompiler/field/m31"
)

func TestKeyedPRNG(t *testing.T) {
	key := []byte("keyed prng test")
	p1, err := NewKeyedPRNG(key)
	require.NoError(t, err)
	p2, err := NewKeyedPRNG(key)
	require.NoError(t, err)
	assert.Equal(t, key, p1.Key())

	b1, b2 := make([]byte, 300), make([]byte, 300)
	_, err = p1.Read(b1)
	require.NoError(t, err)
	_, err = p2.Read(b2)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)

	p1.Reset()
	_, err = p1.Read(b2)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)

	other, err := NewKeyedPRNG([]byte("other key"))
	require.NoError(t, err)
	_, err = other.Read(b2)
	require.NoError(t, err)
	assert.NotEqual(t, b1, b2)

	_, err = NewKeyedPRNG(bytes.Repeat([]byte{1}, 65))
	assert.Error(t, err)
}

func TestThreadSafePRNG(t *testing.T) {
	b1, b2 := make([]byte, 32), make([]byte, 32)
	_, err := NewPRNG().Read(b1)
	require.NoError(t, err)
	_, err = NewPRNG().Read(b2)
	require.NoError(t, err)
	assert.NotEqual(t, b1, b2)
}

func newKeyedSampler(t *testing.T) *Sampler {
	prng, err := NewKeyedPRNG([]byte("sampler"))
	require.NoError(t, err)
	return NewSampler(prng)
}

func TestBelow(t *testing.T) {
	s := newKeyedSampler(t)
	seen := make([]int, 5)
	for i := 0; i < 1000; i++ {
		x, err := s.Below(5)
		require.NoError(t, err)
		require.Less(t, x, uint64(5))
		seen[x]++
	}
	for v, n := range seen {
		assert.Greater(t, n, 100, "value %d drawn %d times", v, n)
	}
	_, err := s.Below(0)
	assert.Error(t, err)
}

func TestUniform(t *testing.T) {
	s := newKeyedSampler(t)
	for _, f := range []field.Field{&m31.Field{}, &bn254.Field{}} {
		for i := 0; i < 50; i++ {
			x, err := s.Uniform(f)
			require.NoError(t, err)
			v := f.ToBigInt(x)
			assert.True(t, v.Sign() >= 0 && v.Cmp(f.Field()) < 0)
		}
	}
}

func TestBounded(t *testing.T) {
	s := newKeyedSampler(t)
	f := &m31.Field{}
	seen := make(map[int64]bool)
	for i := 0; i < 500; i++ {
		x, err := s.Bounded(f, 2)
		require.NoError(t, err)
		c := field.Centered(f, x)
		require.True(t, c.CmpAbs(big.NewInt(2)) <= 0, "%v out of bounds", c)
		seen[c.Int64()] = true
	}
	assert.Len(t, seen, 5)
}

func TestBits(t *testing.T) {
	s := newKeyedSampler(t)
	b, err := s.Bits(100)
	require.NoError(t, err)
	assert.Equal(t, uint(100), b.Len())
	assert.LessOrEqual(t, b.Count(), uint(100))
	_, ok := b.NextSet(100)
	assert.False(t, ok)
	assert.Greater(t, b.Count(), uint(20))
}
