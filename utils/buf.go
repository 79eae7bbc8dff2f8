package utils

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/consensys/gnark/constraint"
)

// ErrShortBuffer is reported by InputBuf when a read runs past the end of the data.
var ErrShortBuffer = errors.New("unexpected end of buffer")

// ErrNonCanonical is reported by InputBuf when a field element is not
// reduced modulo the field order.
var ErrNonCanonical = errors.New("non-canonical field element")

// SimpleField is the subset of a field engine needed to (de)serialize elements.
type SimpleField interface {
	Field() *big.Int
	SerializedLen() int
	ToBigInt(c constraint.Element) *big.Int
	FromInterface(i interface{}) constraint.Element
}

type OutputBuf struct {
	buf []byte
}

// AppendBigInt writes x as n little-endian bytes
func (o *OutputBuf) AppendBigInt(n int, x *big.Int) {
	zbuf := make([]byte, n)
	b := x.Bytes()
	for i := 0; i < len(b) && i < n; i++ {
		zbuf[i] = b[len(b)-i-1]
	}
	o.buf = append(o.buf, zbuf...)
}

func (o *OutputBuf) AppendFieldElement(field SimpleField, x constraint.Element) {
	o.AppendBigInt(field.SerializedLen(), field.ToBigInt(x))
}

func (o *OutputBuf) AppendUint32(x uint32) {
	o.buf = binary.LittleEndian.AppendUint32(o.buf, x)
}

func (o *OutputBuf) AppendUint64(x uint64) {
	o.buf = binary.LittleEndian.AppendUint64(o.buf, x)
}

func (o *OutputBuf) AppendUint8(x uint8) {
	o.buf = append(o.buf, x)
}

func (o *OutputBuf) Bytes() []byte {
	return o.buf
}

// InputBuf reads values written by OutputBuf. The first failed read is
// remembered; later reads return zero values and Err reports the failure.
type InputBuf struct {
	buf []byte
	err error
}

func NewInputBuf(buf []byte) *InputBuf {
	return &InputBuf{buf: buf}
}

func (i *InputBuf) take(n int) []byte {
	if i.err != nil {
		return nil
	}
	if n < 0 || len(i.buf) < n {
		i.err = ErrShortBuffer
		i.buf = nil
		return nil
	}
	x := i.buf[:n]
	i.buf = i.buf[n:]
	return x
}

func (i *InputBuf) ReadUint32() uint32 {
	b := i.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (i *InputBuf) ReadUint64() uint64 {
	b := i.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (i *InputBuf) ReadUint8() uint8 {
	b := i.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (i *InputBuf) ReadBigInt(n int) *big.Int {
	b := i.take(n)
	if b == nil {
		return new(big.Int)
	}
	zbuf := make([]byte, n)
	for j := 0; j < n; j++ {
		zbuf[j] = b[n-1-j]
	}
	return new(big.Int).SetBytes(zbuf)
}

// ReadFieldElement fails with ErrNonCanonical on values not below the field
// order, so that every element has a single encoding.
func (i *InputBuf) ReadFieldElement(field SimpleField) constraint.Element {
	x := i.ReadBigInt(field.SerializedLen())
	if i.err == nil && x.Cmp(field.Field()) >= 0 {
		i.err = ErrNonCanonical
		i.buf = nil
	}
	if i.err != nil {
		return constraint.Element{}
	}
	return field.FromInterface(x)
}

func (i *InputBuf) Err() error {
	return i.err
}

// Len is the number of unread bytes.
func (i *InputBuf) Len() int {
	return len(i.buf)
}

func (i *InputBuf) IsEnd() bool {
	return len(i.buf) == 0
}
