package fhecircuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/FHECircuitCompiler/circuit"
	"github.com/PolyhedraZK/FHECircuitCompiler/field/babybear"
	"github.com/PolyhedraZK/FHECircuitCompiler/instrument"
	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

func newKeys(t *testing.T, cfg lwe.Config) (*lwe.Scheme, *lwe.KeyPair) {
	t.Helper()
	s, err := lwe.NewScheme(cfg)
	require.NoError(t, err)
	kp, err := s.GenerateKey(4)
	require.NoError(t, err)
	return s, kp
}

func encrypt(t *testing.T, s *lwe.Scheme, pk *lwe.PublicKey, bits ...bool) []*lwe.Ciphertext {
	t.Helper()
	res := make([]*lwe.Ciphertext, len(bits))
	for i, b := range bits {
		c, err := s.Encrypt(b, pk)
		require.NoError(t, err)
		res[i] = c
	}
	return res
}

// full adder carry: (a AND b) OR (c AND (a XOR b))
func carry(c *circuit.Circuit) *circuit.Node {
	a, b, cin := c.Input(0), c.Input(1), c.Input(2)
	return c.Or(c.And(a, b), c.And(cin, c.Xor(a, b)))
}

func TestCompile(t *testing.T) {
	s, kp := newKeys(t, lwe.DefaultConfig())
	cnt := instrument.NewCounter()
	root := carry(circuit.New(s))

	res, err := Compile(root, WithObservers(cnt))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Depth())
	assert.Equal(t, 3, res.NumInputs())
	assert.Equal(t, 3, res.Stats().NbInputNodes)
	assert.Equal(t, 2, res.Stats().NbGates[circuit.AND])
	assert.Equal(t, circuit.OR, res.Gate().Type())

	for i := 0; i < 8; i++ {
		a, b, cin := i&1 != 0, i&2 != 0, i&4 != 0
		out, err := res.Evaluate(kp.PublicKey, encrypt(t, s, kp.PublicKey, a, b, cin))
		require.NoError(t, err)
		want := (a && b) || (cin && (a != b))
		assert.Equal(t, want, s.Decrypt(out, kp.SecretKey), "carry(%v, %v, %v)", a, b, cin)
	}
	assert.Equal(t, 8*4, cnt.Evaluated())
	assert.Equal(t, 8, cnt.Count(circuit.XOR, circuit.RevInput))
}

func TestCompileParallel(t *testing.T) {
	s, kp := newKeys(t, lwe.DefaultConfig())
	res, err := Compile(carry(circuit.New(s)), WithParallelism(3))
	require.NoError(t, err)

	out, err := res.Evaluate(kp.PublicKey, encrypt(t, s, kp.PublicKey, true, false, true))
	require.NoError(t, err)
	assert.True(t, s.Decrypt(out, kp.SecretKey))
}

func TestCompileOptions(t *testing.T) {
	s, _ := newKeys(t, lwe.DefaultConfig())
	root := carry(circuit.New(s))

	_, err := Compile(root, WithMaxDepth(3))
	assert.ErrorIs(t, err, ErrTooDeep)
	_, err = Compile(root, WithMaxDepth(4))
	assert.NoError(t, err)

	_, err = Compile(root, WithParallelism(-1))
	assert.ErrorIs(t, err, ErrInvalidOption)
	_, err = Compile(root, WithMaxDepth(-2))
	assert.ErrorIs(t, err, ErrInvalidOption)

	// topology errors surface from Compile
	c := circuit.New(s)
	_, err = Compile(c.NewGate(circuit.XOR))
	assert.ErrorIs(t, err, circuit.ErrInvalidTopology)
}

func TestEvaluateValidatesInputs(t *testing.T) {
	s, kp := newKeys(t, lwe.DefaultConfig())
	res, err := Compile(carry(circuit.New(s)))
	require.NoError(t, err)

	inputs := encrypt(t, s, kp.PublicKey, true, true)
	_, err = res.Evaluate(kp.PublicKey, inputs)
	assert.ErrorIs(t, err, circuit.ErrInputIndex)

	_, err = res.Evaluate(kp.PublicKey, append(inputs, nil))
	assert.ErrorIs(t, err, circuit.ErrInputIndex)

	cfg := lwe.DefaultConfig()
	cfg.Field = &babybear.Field{}
	other, otherKp := newKeys(t, cfg)
	_, err = res.Evaluate(kp.PublicKey, append(inputs, encrypt(t, other, otherKp.PublicKey, true)...))
	assert.ErrorIs(t, err, lwe.ErrInvalidConfig)
}

func TestCompileObserversArePerResult(t *testing.T) {
	s, kp := newKeys(t, lwe.DefaultConfig())
	root := carry(circuit.New(s))
	cnt := instrument.NewCounter()

	first, err := Compile(root, WithObservers(cnt))
	require.NoError(t, err)
	second, err := Compile(root, WithObservers(cnt))
	require.NoError(t, err)
	plain, err := Compile(root)
	require.NoError(t, err)

	inputs := encrypt(t, s, kp.PublicKey, true, false, true)
	_, err = second.Evaluate(kp.PublicKey, inputs)
	require.NoError(t, err)
	assert.Equal(t, 1, cnt.Count(circuit.XOR, ""))
	assert.Equal(t, 1, cnt.Count(circuit.XOR, circuit.RevInput))
	assert.Equal(t, 4, cnt.Evaluated())

	// a result compiled without observers notifies no one
	cnt.Reset()
	_, err = plain.Evaluate(kp.PublicKey, inputs)
	require.NoError(t, err)
	assert.Equal(t, 0, cnt.Evaluated())

	_, err = first.Evaluate(kp.PublicKey, inputs)
	require.NoError(t, err)
	assert.Equal(t, 4, cnt.Evaluated())
}
