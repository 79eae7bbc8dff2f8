package lwe

import (
	"fmt"

	"github.com/PolyhedraZK/FHECircuitCompiler/field"
	"github.com/PolyhedraZK/FHECircuitCompiler/utils"
	"github.com/consensys/gnark/constraint"
)

const (
	tagPublicKey  = 1
	tagSecretKey  = 2
	tagCiphertext = 3
)

func serializeParams(o *utils.OutputBuf, tag uint8, p Parameters) {
	o.AppendUint8(tag)
	o.AppendUint64(field.GetFieldId(p.field))
	o.AppendUint64(uint64(p.k))
}

func serializeMatrix(o *utils.OutputBuf, f field.Field, m *Matrix) {
	o.AppendUint64(uint64(m.Rows))
	o.AppendUint64(uint64(m.Cols))
	for _, x := range m.Data {
		o.AppendFieldElement(f, x)
	}
}

func deserializeParams(i *utils.InputBuf, tag uint8) (Parameters, error) {
	if t := i.ReadUint8(); t != tag {
		return Parameters{}, fmt.Errorf("%w: unexpected tag %d", ErrMalformed, t)
	}
	id := i.ReadUint64()
	k := i.ReadUint64()
	if err := i.Err(); err != nil {
		return Parameters{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	f, ok := field.GetFieldById(id)
	if !ok {
		return Parameters{}, fmt.Errorf("%w: unknown field id %d", ErrMalformed, id)
	}
	if k == 0 || k > 1<<16 {
		return Parameters{}, fmt.Errorf("%w: dimension %d", ErrMalformed, k)
	}
	return newParameters(f, int(k)), nil
}

func deserializeMatrix(i *utils.InputBuf, f field.Field, rows, cols int) (*Matrix, error) {
	r, c := i.ReadUint64(), i.ReadUint64()
	if err := i.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r != uint64(rows) || c != uint64(cols) {
		return nil, fmt.Errorf("%w: matrix is %dx%d, expected %dx%d", ErrMalformed, r, c, rows, cols)
	}
	if i.Len() < rows*cols*f.SerializedLen() {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, utils.ErrShortBuffer)
	}
	m := NewMatrix(rows, cols)
	for k := range m.Data {
		m.Data[k] = i.ReadFieldElement(f)
	}
	if err := i.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return m, nil
}

func (pk *PublicKey) Serialize() []byte {
	o := &utils.OutputBuf{}
	serializeParams(o, tagPublicKey, pk.Params)
	serializeMatrix(o, pk.Params.field, pk.A)
	return o.Bytes()
}

func DeserializePublicKey(buf []byte) (*PublicKey, error) {
	i := utils.NewInputBuf(buf)
	p, err := deserializeParams(i, tagPublicKey)
	if err != nil {
		return nil, err
	}
	a, err := deserializeMatrix(i, p.field, p.N(), p.M())
	if err != nil {
		return nil, err
	}
	if !i.IsEnd() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	return &PublicKey{Params: p, A: a, g: newGadget(p)}, nil
}

func (sk *SecretKey) Serialize() []byte {
	o := &utils.OutputBuf{}
	serializeParams(o, tagSecretKey, sk.Params)
	for _, x := range sk.S {
		o.AppendFieldElement(sk.Params.field, x)
	}
	return o.Bytes()
}

func DeserializeSecretKey(buf []byte) (*SecretKey, error) {
	i := utils.NewInputBuf(buf)
	p, err := deserializeParams(i, tagSecretKey)
	if err != nil {
		return nil, err
	}
	s := make([]constraint.Element, p.N())
	for k := range s {
		s[k] = i.ReadFieldElement(p.field)
	}
	if err := i.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !i.IsEnd() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	return &SecretKey{Params: p, S: s}, nil
}

func (c *Ciphertext) Serialize() []byte {
	o := &utils.OutputBuf{}
	serializeParams(o, tagCiphertext, c.Params)
	serializeMatrix(o, c.Params.field, c.Value)
	return o.Bytes()
}

func DeserializeCiphertext(buf []byte) (*Ciphertext, error) {
	i := utils.NewInputBuf(buf)
	p, err := deserializeParams(i, tagCiphertext)
	if err != nil {
		return nil, err
	}
	v, err := deserializeMatrix(i, p.field, p.N(), p.Width())
	if err != nil {
		return nil, err
	}
	if !i.IsEnd() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	return &Ciphertext{Params: p, Value: v}, nil
}
