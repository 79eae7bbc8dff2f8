package test

import (
	"testing"

	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

// Evaluator is a compiled circuit.
type Evaluator interface {
	Evaluate(pk *lwe.PublicKey, inputs []*lwe.Ciphertext) (*lwe.Ciphertext, error)
}

// Assert checks compiled circuits under one key pair.
type Assert struct {
	t      *testing.T
	scheme *lwe.Scheme
	kp     *lwe.KeyPair
}

func NewAssert(t *testing.T, scheme *lwe.Scheme, kp *lwe.KeyPair) *Assert {
	return &Assert{t: t, scheme: scheme, kp: kp}
}

// Encrypt encrypts every bit of bits under the public key.
func (a *Assert) Encrypt(bits []bool) []*lwe.Ciphertext {
	a.t.Helper()
	res := make([]*lwe.Ciphertext, len(bits))
	for i, b := range bits {
		c, err := a.scheme.Encrypt(b, a.kp.PublicKey)
		if err != nil {
			a.t.Fatal(err)
		}
		res[i] = c
	}
	return res
}

// EvaluatesTo evaluates c over the encryption of inputs and checks the
// decrypted output.
func (a *Assert) EvaluatesTo(c Evaluator, inputs []bool, expected bool) {
	a.t.Helper()
	out, err := c.Evaluate(a.kp.PublicKey, a.Encrypt(inputs))
	if err != nil {
		a.t.Fatal(err)
	}
	if got := a.scheme.Decrypt(out, a.kp.SecretKey); got != expected {
		_, noise := a.scheme.Noise(out, a.kp.SecretKey)
		a.t.Fatalf("inputs %v: decrypted %v, expected %v (noise %s)", inputs, got, expected, noise)
	}
}
