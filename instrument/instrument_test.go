package instrument

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/FHECircuitCompiler/circuit"
	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

const securityParameter = 4

type fixture struct {
	scheme *lwe.Scheme
	kp     *lwe.KeyPair
	inputs []*lwe.Ciphertext
}

func newFixture(t *testing.T, bits ...bool) *fixture {
	t.Helper()
	s, err := lwe.NewScheme(lwe.DefaultConfig())
	require.NoError(t, err)
	kp, err := s.GenerateKey(securityParameter)
	require.NoError(t, err)
	f := &fixture{scheme: s, kp: kp}
	for _, b := range bits {
		c, err := s.Encrypt(b, kp.PublicKey)
		require.NoError(t, err)
		f.inputs = append(f.inputs, c)
	}
	return f
}

// (in0 XOR in1) AND NOT in2
func (f *fixture) run(t *testing.T, observers ...circuit.Observer) *lwe.Ciphertext {
	t.Helper()
	c := circuit.New(f.scheme)
	for _, o := range observers {
		c.AddObserver(o)
	}
	root := c.And(c.Xor(c.Input(0), c.Input(1)), c.Not(c.Input(2)))
	g, err := root.Build(&circuit.Depth{})
	require.NoError(t, err)
	return g.Evaluate(f.kp.PublicKey, f.inputs)
}

func TestCounter(t *testing.T) {
	f := newFixture(t, true, false, false)
	cnt := NewCounter()
	f.run(t, cnt)

	assert.Equal(t, 1, cnt.Count(circuit.XOR, ""))
	assert.Equal(t, 1, cnt.Count(circuit.XOR, circuit.RevInput))
	assert.Equal(t, 1, cnt.Count(circuit.NOT, ""))
	assert.Equal(t, 1, cnt.Count(circuit.AND, ""))
	assert.Equal(t, 0, cnt.Count(circuit.OR, ""))
	assert.Equal(t, 3, cnt.Evaluated())

	cnt.Reset()
	assert.Equal(t, 0, cnt.Evaluated())
}

func TestLogObserver(t *testing.T) {
	f := newFixture(t, true, true, true)
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	f.run(t, NewLogObserver(log))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)

	var last map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[4]), &last))
	assert.Equal(t, "AND", last["gate"])
	assert.Equal(t, circuit.RevInput, last["comment"])
	assert.Equal(t, float64(5), last["seq"])
	assert.Equal(t, "observer", last["component"])

	// nothing below info when the level is raised
	buf.Reset()
	f.run(t, NewLogObserver(log.Level(zerolog.InfoLevel)))
	assert.Empty(t, buf.String())
}

func TestNoiseObserver(t *testing.T) {
	f := newFixture(t, true, false, false)
	noise := NewNoiseObserver(f.scheme, f.kp.SecretKey)
	out := f.run(t, noise)

	assert.True(t, f.scheme.Decrypt(out, f.kp.SecretKey))
	assert.Equal(t, 0, noise.Mismatches())

	not, ok := noise.Summary(circuit.NOT, "")
	require.True(t, ok)
	assert.Equal(t, 1, not.Count)
	assert.Equal(t, not.Mean, not.Max)

	and, ok := noise.Summary(circuit.AND, "")
	require.True(t, ok)
	assert.Equal(t, 1, and.Count)

	_, ok = noise.Summary(circuit.OR, "")
	assert.False(t, ok)

	all, ok := noise.Overall()
	require.True(t, ok)
	assert.Equal(t, 5, all.Count)
	assert.GreaterOrEqual(t, all.Max, all.Mean)
	assert.GreaterOrEqual(t, all.Max, and.Max)
	q := float64(f.kp.PublicKey.Params.Field().Field().Int64())
	assert.Less(t, all.Max, q/8)
}

func TestNoiseObserverMismatch(t *testing.T) {
	f := newFixture(t, true)
	noise := NewNoiseObserver(f.scheme, f.kp.SecretKey)
	// report a NOT whose output is its input
	err := noise.Unary(circuit.NOT, f.inputs[0], f.inputs[0])
	assert.True(t, errors.Is(err, ErrMismatch))
	assert.Equal(t, 1, noise.Mismatches())
}
