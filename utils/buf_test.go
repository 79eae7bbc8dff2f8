package utils

import (
	"errors"
	"math/big"
	"testing"

	"github.com/consensys/gnark/constraint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuf(t *testing.T) {
	var o OutputBuf
	o.AppendUint8(7)
	o.AppendUint32(0xdeadbeef)
	o.AppendUint64(1 << 40)
	o.AppendBigInt(5, big.NewInt(0x010203))
	require.Len(t, o.Bytes(), 1+4+8+5)
	assert.Equal(t, []byte{3, 2, 1, 0, 0}, o.Bytes()[13:])

	in := NewInputBuf(o.Bytes())
	assert.Equal(t, uint8(7), in.ReadUint8())
	assert.Equal(t, uint32(0xdeadbeef), in.ReadUint32())
	assert.Equal(t, uint64(1<<40), in.ReadUint64())
	assert.Equal(t, big.NewInt(0x010203), in.ReadBigInt(5))
	assert.True(t, in.IsEnd())
	assert.NoError(t, in.Err())
}

func TestInputBufShort(t *testing.T) {
	in := NewInputBuf([]byte{1, 2, 3})
	assert.Equal(t, 3, in.Len())
	assert.Equal(t, uint32(0), in.ReadUint32())
	assert.True(t, errors.Is(in.Err(), ErrShortBuffer))
	// the error sticks
	assert.Equal(t, uint8(0), in.ReadUint8())
	assert.True(t, errors.Is(in.Err(), ErrShortBuffer))
}

func TestFromInterface(t *testing.T) {
	for _, x := range []interface{}{42, int8(42), uint16(42), uint64(42), "42", "0x2a", big.NewInt(42), *big.NewInt(42), []byte{42}} {
		v := FromInterface(x)
		assert.Equal(t, int64(42), v.Int64(), "%T", x)
	}
	v := FromInterface(true)
	assert.Equal(t, int64(1), v.Int64())
	assert.Panics(t, func() { FromInterface(1.5) })
}

type smallField struct{}

func (smallField) Field() *big.Int   { return big.NewInt(251) }
func (smallField) SerializedLen() int { return 1 }
func (smallField) ToBigInt(c constraint.Element) *big.Int {
	return new(big.Int).SetUint64(c[0])
}
func (smallField) FromInterface(i interface{}) constraint.Element {
	b := FromInterface(i)
	return constraint.Element{b.Uint64()}
}

func TestReadFieldElementCanonical(t *testing.T) {
	in := NewInputBuf([]byte{250, 251})
	assert.Equal(t, uint64(250), in.ReadFieldElement(smallField{})[0])
	require.NoError(t, in.Err())

	assert.Equal(t, constraint.Element{}, in.ReadFieldElement(smallField{}))
	assert.True(t, errors.Is(in.Err(), ErrNonCanonical))
}
