package lwe

import (
	"math/big"

	"github.com/PolyhedraZK/FHECircuitCompiler/field"
	"github.com/bits-and-blooms/bitset"
)

// CreateG returns the gadget matrix G for dimension n and modulus q.
// G has n rows and n·L columns, L = bitLength(q); row i holds
// [2^0, 2^1, ..., 2^(L-1)] in columns [i·L, (i+1)·L) and zeros elsewhere.
func CreateG(n int, q *big.Int) [][]*big.Int {
	l := q.BitLen()
	g := smallG(l)
	res := make([][]*big.Int, n)
	for row := 0; row < n; row++ {
		res[row] = make([]*big.Int, n*l)
		for col := range res[row] {
			res[row][col] = new(big.Int)
		}
		for i, x := range g {
			res[row][row*l+i].Set(x)
		}
	}
	return res
}

// smallG returns the vector g = [1, 2, ..., 2^(l-1)].
func smallG(l int) []*big.Int {
	res := make([]*big.Int, l)
	for i := range res {
		res[i] = new(big.Int).Lsh(big.NewInt(1), uint(i))
	}
	return res
}

// newGadget lifts CreateG into the field of p.
func newGadget(p Parameters) *Matrix {
	f := p.field
	g := CreateG(p.N(), f.Field())
	m := NewMatrix(p.N(), p.Width())
	for i, row := range g {
		for j, x := range row {
			if x.Sign() != 0 {
				m.Set(i, j, f.FromInterface(x))
			}
		}
	}
	return m
}

// decompose computes G⁻¹(c): the binary matrix D with G·D = c. Column j of
// D is the little-endian bit decomposition of column j of c, L bits per row.
func decompose(f field.Field, c *Matrix, l int) []*bitset.BitSet {
	cols := make([]*bitset.BitSet, c.Cols)
	for j := range cols {
		col := bitset.New(uint(c.Rows * l))
		for i := 0; i < c.Rows; i++ {
			x := c.At(i, j)
			base := uint(i * l)
			if u, ok := f.Uint64(x); ok {
				for b := 0; u != 0; b++ {
					if u&1 == 1 {
						col.Set(base + uint(b))
					}
					u >>= 1
				}
				continue
			}
			v := f.ToBigInt(x)
			for b := 0; b < l; b++ {
				if v.Bit(b) == 1 {
					col.Set(base + uint(b))
				}
			}
		}
		cols[j] = col
	}
	return cols
}
