package m31

import (
	"math/big"
	"strconv"

	"github.com/PolyhedraZK/FHECircuitCompiler/utils"
	"github.com/consensys/gnark/constraint"
)

// P is the Mersenne prime 2^31-1.
const P = 0x7fffffff

var ScalarField = big.NewInt(P)

type Field struct{}

func modReduce(x uint64) uint64 {
	x = (x & P) + (x >> 31)
	x = (x & P) + (x >> 31)
	if x >= P {
		x -= P
	}
	return x
}

func (engine *Field) FromInterface(i interface{}) constraint.Element {
	b := utils.FromInterface(i)
	b.Mod(&b, ScalarField)
	return constraint.Element{b.Uint64()}
}

func (engine *Field) ToBigInt(c constraint.Element) *big.Int {
	return new(big.Int).SetUint64(c[0])
}

func (engine *Field) Mul(a, b constraint.Element) constraint.Element {
	return constraint.Element{modReduce(a[0] * b[0])}
}

func (engine *Field) Add(a, b constraint.Element) constraint.Element {
	res := a[0] + b[0]
	if res >= P {
		res -= P
	}
	return constraint.Element{res}
}

func (engine *Field) Sub(a, b constraint.Element) constraint.Element {
	if a[0] >= b[0] {
		return constraint.Element{a[0] - b[0]}
	}
	return constraint.Element{a[0] + P - b[0]}
}

func (engine *Field) Neg(a constraint.Element) constraint.Element {
	if a[0] == 0 {
		return a
	}
	return constraint.Element{P - a[0]}
}

func (engine *Field) Inverse(a constraint.Element) (constraint.Element, bool) {
	if a[0] == 0 {
		return a, false
	}
	var res uint64 = 1
	b := a[0]
	for i := P - 2; i > 0; i >>= 1 {
		if (i & 1) != 0 {
			res = modReduce(res * b)
		}
		b = modReduce(b * b)
	}
	return constraint.Element{res}, true
}

func (engine *Field) IsOne(a constraint.Element) bool {
	return a[0] == 1
}

func (engine *Field) One() constraint.Element {
	return constraint.Element{1}
}

func (engine *Field) String(a constraint.Element) string {
	return strconv.FormatUint(a[0], 10)
}

func (engine *Field) Uint64(a constraint.Element) (uint64, bool) {
	return a[0], true
}

func (engine *Field) Field() *big.Int {
	return ScalarField
}

func (engine *Field) FieldBitLen() int {
	return 31
}

func (engine *Field) SerializedLen() int {
	return 4
}
