package lwe

// Evaluator implements the homomorphic gates. It holds no state and is safe
// for concurrent use.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Not returns G - C, an encryption of ¬a with the same noise magnitude.
func (Evaluator) Not(c *Ciphertext, pk *PublicKey) *Ciphertext {
	f := pk.Params.field
	return &Ciphertext{Params: pk.Params, Value: subMatrix(f, pk.Gadget(), c.Value)}
}

// And returns C1·G⁻¹(C2). The noise of c1 is amplified by up to N·L while
// the noise of c2 is only added, so c1 should be the less noisy operand.
func (Evaluator) And(c1, c2 *Ciphertext, pk *PublicKey) *Ciphertext {
	return &Ciphertext{Params: pk.Params, Value: and(pk, c1, c2)}
}

func (Evaluator) Nand(c1, c2 *Ciphertext, pk *PublicKey) *Ciphertext {
	f := pk.Params.field
	return &Ciphertext{Params: pk.Params, Value: subMatrix(f, pk.Gadget(), and(pk, c1, c2))}
}

func (Evaluator) Or(c1, c2 *Ciphertext, pk *PublicKey) *Ciphertext {
	f := pk.Params.field
	sum := addMatrix(f, c1.Value, c2.Value)
	return &Ciphertext{Params: pk.Params, Value: subMatrix(f, sum, and(pk, c1, c2))}
}

func (Evaluator) Xor(c1, c2 *Ciphertext, pk *PublicKey) *Ciphertext {
	f := pk.Params.field
	sum := addMatrix(f, c1.Value, c2.Value)
	prod := and(pk, c1, c2)
	prod = addMatrix(f, prod, prod)
	return &Ciphertext{Params: pk.Params, Value: subMatrix(f, sum, prod)}
}

func and(pk *PublicKey, c1, c2 *Ciphertext) *Matrix {
	f := pk.Params.field
	return mulBinary(f, c1.Value, decompose(f, c2.Value, pk.Params.L()))
}
