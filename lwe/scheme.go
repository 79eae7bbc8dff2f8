package lwe

import (
	"fmt"
	"math/big"

	"github.com/PolyhedraZK/FHECircuitCompiler/field"
	"github.com/PolyhedraZK/FHECircuitCompiler/sampling"
	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark/constraint"
)

// Scheme generates keys, encrypts and decrypts bits. It embeds an Evaluator,
// so a Scheme also provides the homomorphic gates.
type Scheme struct {
	Evaluator
	cfg Config
}

func NewScheme(cfg Config) (*Scheme, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Scheme{cfg: cfg}, nil
}

func (s *Scheme) Config() Config {
	return s.cfg
}

// GenerateKey samples a fresh key pair with LWE dimension securityParameter.
func (s *Scheme) GenerateKey(securityParameter int) (*KeyPair, error) {
	if securityParameter < 1 {
		return nil, fmt.Errorf("%w: security parameter %d", ErrInvalidConfig, securityParameter)
	}
	params := newParameters(s.cfg.Field, securityParameter)
	f := params.field
	k, m := params.K(), params.M()
	sampler := sampling.NewSampler(s.cfg.PRNG)

	t := make([]constraint.Element, k)
	for i := range t {
		x, err := sampler.Uniform(f)
		if err != nil {
			return nil, fmt.Errorf("sample secret: %w", err)
		}
		t[i] = x
	}

	a := NewMatrix(params.N(), m)
	for i := 0; i < k; i++ {
		for j := 0; j < m; j++ {
			x, err := sampler.Uniform(f)
			if err != nil {
				return nil, fmt.Errorf("sample public matrix: %w", err)
			}
			a.Set(i, j, x)
		}
	}
	// last row: tᵀB + eᵀ
	for j := 0; j < m; j++ {
		e, err := sampler.Bounded(f, s.cfg.NoiseBound)
		if err != nil {
			return nil, fmt.Errorf("sample error: %w", err)
		}
		acc := e
		for i := 0; i < k; i++ {
			acc = f.Add(acc, f.Mul(t[i], a.At(i, j)))
		}
		a.Set(k, j, acc)
	}

	sk := make([]constraint.Element, params.N())
	for i := range t {
		sk[i] = f.Neg(t[i])
	}
	sk[k] = f.One()

	return &KeyPair{
		PublicKey: &PublicKey{Params: params, A: a, g: newGadget(params)},
		SecretKey: &SecretKey{Params: params, S: sk},
	}, nil
}

// Encrypt returns C = A·R + bit·G for a fresh random binary R.
func (s *Scheme) Encrypt(bit bool, pk *PublicKey) (*Ciphertext, error) {
	params := pk.Params
	sampler := sampling.NewSampler(s.cfg.PRNG)
	r := make([]*bitset.BitSet, params.Width())
	for j := range r {
		col, err := sampler.Bits(uint(params.M()))
		if err != nil {
			return nil, fmt.Errorf("sample randomness: %w", err)
		}
		r[j] = col
	}
	c := mulBinary(params.field, pk.A, r)
	if bit {
		c = addMatrix(params.field, c, pk.Gadget())
	}
	return &Ciphertext{Params: params, Value: c}, nil
}

// Decrypt returns the bit encrypted by c. The result is only meaningful while
// the noise of c stays below q/8.
func (s *Scheme) Decrypt(c *Ciphertext, sk *SecretKey) bool {
	bit, _ := s.Noise(c, sk)
	return bit
}

// Phase returns ⟨s, C[:, j]⟩ centered in (-q/2, q/2], where column j selects
// the 2^(L-2) entry of the gadget's last row.
func (s *Scheme) Phase(c *Ciphertext, sk *SecretKey) *big.Int {
	f := sk.Params.field
	x := dot(f, sk.S, c.Value, sk.Params.decryptionColumn())
	return field.Centered(f, x)
}

// Noise decrypts c and also returns the signed noise: the phase minus the
// noiseless phase of the decrypted bit.
func (s *Scheme) Noise(c *Ciphertext, sk *SecretKey) (bool, *big.Int) {
	q := sk.Params.field.Field()
	phase := s.Phase(c, sk)
	threshold := new(big.Int).Rsh(q, 3)
	bit := new(big.Int).Abs(phase).Cmp(threshold) > 0
	noise := new(big.Int).Set(phase)
	if bit {
		noise.Sub(noise, new(big.Int).Lsh(big.NewInt(1), uint(sk.Params.L()-2)))
	}
	return bit, noise
}
