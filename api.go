package fhecircuit

import (
	"fmt"

	"github.com/PolyhedraZK/FHECircuitCompiler/circuit"
)

// CompileConfig holds the options of Compile.
type CompileConfig struct {
	// Parallelism is the number of extra goroutines CompileResult.Evaluate
	// may use. 0 evaluates sequentially.
	Parallelism int
	// MaxDepth rejects circuits deeper than this noise depth. 0 disables the
	// check.
	MaxDepth int
	// Observers are notified by the gates of this compilation only.
	Observers []circuit.Observer
}

type CompileOption func(*CompileConfig) error

// WithParallelism evaluates independent subtrees on up to workers goroutines.
func WithParallelism(workers int) CompileOption {
	return func(c *CompileConfig) error {
		if workers < 0 {
			return fmt.Errorf("%w: negative parallelism %d", ErrInvalidOption, workers)
		}
		c.Parallelism = workers
		return nil
	}
}

// WithMaxDepth makes Compile fail on circuits whose noise depth exceeds
// depth, the largest depth the key parameters are known to decrypt.
func WithMaxDepth(depth int) CompileOption {
	return func(c *CompileConfig) error {
		if depth < 0 {
			return fmt.Errorf("%w: negative max depth %d", ErrInvalidOption, depth)
		}
		c.MaxDepth = depth
		return nil
	}
}

// WithObservers notifies observers of the gates evaluated by the result of
// this compilation. The circuit itself is left unchanged.
func WithObservers(observers ...circuit.Observer) CompileOption {
	return func(c *CompileConfig) error {
		c.Observers = append(c.Observers, observers...)
		return nil
	}
}
