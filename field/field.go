// Package field provides the prime-field engines used as the LWE modulus q.
// Every engine implements gnark's constraint.Field over constraint.Element.
package field

import (
	"fmt"
	"math/big"

	"github.com/PolyhedraZK/FHECircuitCompiler/field/babybear"
	"github.com/PolyhedraZK/FHECircuitCompiler/field/bn254"
	"github.com/PolyhedraZK/FHECircuitCompiler/field/m31"
	"github.com/consensys/gnark/constraint"
)

type Field interface {
	constraint.Field
	Field() *big.Int
	FieldBitLen() int
	SerializedLen() int
}

func GetFieldFromOrder(x *big.Int) Field {
	if x.Cmp(bn254.ScalarField) == 0 {
		return &bn254.Field{}
	}
	if x.Cmp(m31.ScalarField) == 0 {
		return &m31.Field{}
	}
	if x.Cmp(babybear.ScalarField) == 0 {
		return &babybear.Field{}
	}
	panic(fmt.Sprintf("unknown field %v", x))
}

func GetFieldId(f Field) uint64 {
	switch {
	case f.Field().Cmp(m31.ScalarField) == 0:
		return 1
	case f.Field().Cmp(babybear.ScalarField) == 0:
		return 2
	case f.Field().Cmp(bn254.ScalarField) == 0:
		return 3
	}
	panic(fmt.Sprintf("unsupported field %v", f.Field()))
}

// GetFieldById is the inverse of GetFieldId. It returns false for unknown ids
// so that deserialization of untrusted data does not panic.
func GetFieldById(id uint64) (Field, bool) {
	switch id {
	case 1:
		return &m31.Field{}, true
	case 2:
		return &babybear.Field{}, true
	case 3:
		return &bn254.Field{}, true
	}
	return nil, false
}

// Centered returns the representative of x in (-q/2, q/2].
func Centered(f Field, x constraint.Element) *big.Int {
	q := f.Field()
	v := f.ToBigInt(x)
	half := new(big.Int).Rsh(q, 1)
	if v.Cmp(half) > 0 {
		v.Sub(v, q)
	}
	return v
}

// FromInt64 maps a signed integer into the field.
func FromInt64(f Field, x int64) constraint.Element {
	if x >= 0 {
		return f.FromInterface(uint64(x))
	}
	return f.Neg(f.FromInterface(uint64(-x)))
}
