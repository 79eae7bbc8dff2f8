package instrument

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/PolyhedraZK/FHECircuitCompiler/circuit"
	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

// LogObserver writes one debug event per report.
type LogObserver struct {
	log zerolog.Logger
	seq atomic.Int64
}

func NewLogObserver(log zerolog.Logger) *LogObserver {
	return &LogObserver{log: log.With().Str("component", "observer").Logger()}
}

func (o *LogObserver) Unary(t circuit.GateType, in, out *lwe.Ciphertext) error {
	o.log.Debug().
		Int64("seq", o.seq.Add(1)).
		Str("gate", t.String()).
		Int("rows", out.Value.Rows).
		Int("cols", out.Value.Cols).
		Msg("unary gate evaluated")
	return nil
}

func (o *LogObserver) Binary(t circuit.GateType, left, right, out *lwe.Ciphertext, comment string) error {
	e := o.log.Debug().
		Int64("seq", o.seq.Add(1)).
		Str("gate", t.String()).
		Int("rows", out.Value.Rows).
		Int("cols", out.Value.Cols)
	if comment != "" {
		e = e.Str("comment", comment)
	}
	e.Msg("binary gate evaluated")
	return nil
}
