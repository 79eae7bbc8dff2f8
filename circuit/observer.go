package circuit

import (
	"fmt"

	"github.com/consensys/gnark/logger"

	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

// RevInput tags the second report of a binary gate, whose result was
// computed with the operands swapped. Both reports carry the operands in
// their canonical order.
const RevInput = "RevInput"

// Observer receives the operands and result of every evaluated gate.
// Errors and panics raised by an observer are logged and discarded.
type Observer interface {
	Unary(t GateType, in, out *lwe.Ciphertext) error
	Binary(t GateType, left, right, out *lwe.Ciphertext, comment string) error
}

func notifyUnary(observers []Observer, t GateType, in, out *lwe.Ciphertext) {
	for _, o := range observers {
		safely(o, t, func() error { return o.Unary(t, in, out) })
	}
}

func notifyBinary(observers []Observer, t GateType, left, right, out *lwe.Ciphertext, comment string) {
	for _, o := range observers {
		safely(o, t, func() error { return o.Binary(t, left, right, out, comment) })
	}
}

func safely(o Observer, t GateType, f func() error) {
	defer func() {
		if r := recover(); r != nil {
			log := logger.Logger()
			log.Error().Str("gate", t.String()).Str("observer", fmt.Sprintf("%T", o)).Interface("panic", r).Msg("observer panicked")
		}
	}()
	if err := f(); err != nil {
		log := logger.Logger()
		log.Error().Err(err).Str("gate", t.String()).Str("observer", fmt.Sprintf("%T", o)).Msg("observer failed")
	}
}
