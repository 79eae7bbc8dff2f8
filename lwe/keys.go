package lwe

import (
	"github.com/consensys/gnark/constraint"
)

// PublicKey is the matrix A with sᵀA small. It also carries the gadget
// matrix of its parameters, shared by every gate evaluated under the key.
type PublicKey struct {
	Params Parameters
	A      *Matrix
	g      *Matrix
}

// SecretKey is the vector s = (-t, 1).
type SecretKey struct {
	Params Parameters
	S      []constraint.Element
}

type KeyPair struct {
	PublicKey *PublicKey
	SecretKey *SecretKey
}

// Gadget returns the gadget matrix used by pk.
func (pk *PublicKey) Gadget() *Matrix {
	if pk.g == nil {
		pk.g = newGadget(pk.Params)
	}
	return pk.g
}

// Ciphertext is an N × N·L matrix encrypting a single bit.
type Ciphertext struct {
	Params Parameters
	Value  *Matrix
}

func (c *Ciphertext) Equal(o *Ciphertext) bool {
	return c.Params.Equal(o.Params) && c.Value.Equal(o.Value)
}
