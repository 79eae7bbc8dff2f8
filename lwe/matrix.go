package lwe

import (
	"github.com/PolyhedraZK/FHECircuitCompiler/field"
	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark/constraint"
)

// Matrix is a dense row-major matrix over a field.
type Matrix struct {
	Rows int
	Cols int
	Data []constraint.Element
}

func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		Rows: rows,
		Cols: cols,
		Data: make([]constraint.Element, rows*cols),
	}
}

func (m *Matrix) At(i, j int) constraint.Element {
	return m.Data[i*m.Cols+j]
}

func (m *Matrix) Set(i, j int, x constraint.Element) {
	m.Data[i*m.Cols+j] = x
}

func (m *Matrix) Equal(o *Matrix) bool {
	if m.Rows != o.Rows || m.Cols != o.Cols {
		return false
	}
	for i := range m.Data {
		if m.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}

func (m *Matrix) Clone() *Matrix {
	r := &Matrix{Rows: m.Rows, Cols: m.Cols, Data: make([]constraint.Element, len(m.Data))}
	copy(r.Data, m.Data)
	return r
}

func addMatrix(f field.Field, a, b *Matrix) *Matrix {
	r := NewMatrix(a.Rows, a.Cols)
	for i := range r.Data {
		r.Data[i] = f.Add(a.Data[i], b.Data[i])
	}
	return r
}

func subMatrix(f field.Field, a, b *Matrix) *Matrix {
	r := NewMatrix(a.Rows, a.Cols)
	for i := range r.Data {
		r.Data[i] = f.Sub(a.Data[i], b.Data[i])
	}
	return r
}

// mulBinary returns a·B where column j of the binary matrix B is cols[j].
// Only additions are needed: column j of the product is the sum of the
// columns of a selected by cols[j].
func mulBinary(f field.Field, a *Matrix, cols []*bitset.BitSet) *Matrix {
	r := NewMatrix(a.Rows, len(cols))
	acc := make([]constraint.Element, a.Rows)
	for j, col := range cols {
		for i := range acc {
			acc[i] = constraint.Element{}
		}
		for k, ok := col.NextSet(0); ok && int(k) < a.Cols; k, ok = col.NextSet(k + 1) {
			for i := 0; i < a.Rows; i++ {
				acc[i] = f.Add(acc[i], a.Data[i*a.Cols+int(k)])
			}
		}
		for i := range acc {
			r.Data[i*r.Cols+j] = acc[i]
		}
	}
	return r
}

// dot returns Σ s[i]·m[i][col].
func dot(f field.Field, s []constraint.Element, m *Matrix, col int) constraint.Element {
	var acc constraint.Element
	for i := range s {
		acc = f.Add(acc, f.Mul(s[i], m.At(i, col)))
	}
	return acc
}
