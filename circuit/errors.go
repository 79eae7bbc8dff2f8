package circuit

import "errors"

var (
	// ErrInvalidTopology reports a node whose children do not match its type,
	// or a graph that is not a DAG.
	ErrInvalidTopology = errors.New("invalid circuit topology")
	// ErrInvalidGateType reports a gate type the compiler does not handle.
	// It indicates a defect in the compiler, not in the circuit.
	ErrInvalidGateType = errors.New("invalid gate type")
	// ErrInputIndex reports an input index outside of the supplied inputs.
	ErrInputIndex = errors.New("input index out of range")
)
