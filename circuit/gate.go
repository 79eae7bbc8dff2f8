package circuit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

// Gate is a compiled circuit node.
type Gate interface {
	// Evaluate computes the gate over the ciphertexts of inputs. Gates shared
	// by several parents are evaluated once per call. It panics when an INPUT
	// gate reads outside of inputs.
	Evaluate(pk *lwe.PublicKey, inputs []*lwe.Ciphertext) *lwe.Ciphertext

	// Type is the node type the gate was compiled from.
	Type() GateType

	eval(e *evaluation) (*lwe.Ciphertext, error)
}

// program is shared by all gates of one build.
type program struct {
	slots int
}

type gateBase struct {
	slot int
	prog *program
	typ  GateType
}

func (g *gateBase) Type() GateType {
	return g.typ
}

type cell struct {
	once sync.Once
	out  *lwe.Ciphertext
	err  error
}

// evaluation is the state of one top-level evaluate call.
type evaluation struct {
	pk     *lwe.PublicKey
	inputs []*lwe.Ciphertext
	cells  []cell

	// set for parallel evaluations only
	ctx context.Context
	sem *semaphore.Weighted
}

func newEvaluation(p *program, pk *lwe.PublicKey, inputs []*lwe.Ciphertext) *evaluation {
	return &evaluation{
		pk:     pk,
		inputs: inputs,
		cells:  make([]cell, p.slots),
	}
}

func (e *evaluation) memo(slot int, f func() (*lwe.Ciphertext, error)) (*lwe.Ciphertext, error) {
	c := &e.cells[slot]
	c.once.Do(func() {
		c.out, c.err = f()
	})
	return c.out, c.err
}

func evaluate(g Gate, prog *program, pk *lwe.PublicKey, inputs []*lwe.Ciphertext) *lwe.Ciphertext {
	out, err := g.eval(newEvaluation(prog, pk, inputs))
	if err != nil {
		panic(err)
	}
	return out
}

// EvaluateParallel is Gate.Evaluate with the two subtrees of binary gates
// evaluated concurrently, using at most workers extra goroutines at a time.
// Input index errors are returned instead of panicking.
func EvaluateParallel(ctx context.Context, g Gate, pk *lwe.PublicKey, inputs []*lwe.Ciphertext, workers int) (*lwe.Ciphertext, error) {
	var prog *program
	switch x := g.(type) {
	case *inputGate:
		prog = x.prog
	case *unaryGate:
		prog = x.prog
	case *binaryGate:
		prog = x.prog
	default:
		return nil, fmt.Errorf("%w: unknown gate implementation %T", ErrInvalidGateType, g)
	}
	if workers < 1 {
		workers = 1
	}
	// the gadget matrix is built lazily; do it before any goroutine reads it
	pk.Gadget()

	e := newEvaluation(prog, pk, inputs)
	e.ctx = ctx
	e.sem = semaphore.NewWeighted(int64(workers))
	return g.eval(e)
}

type inputGate struct {
	gateBase
	index int
}

func (g *inputGate) Evaluate(pk *lwe.PublicKey, inputs []*lwe.Ciphertext) *lwe.Ciphertext {
	return evaluate(g, g.prog, pk, inputs)
}

func (g *inputGate) eval(e *evaluation) (*lwe.Ciphertext, error) {
	if g.index >= len(e.inputs) {
		return nil, fmt.Errorf("%w: input %d of %d", ErrInputIndex, g.index, len(e.inputs))
	}
	return e.inputs[g.index], nil
}

type unaryGate struct {
	gateBase
	op        func(c *lwe.Ciphertext, pk *lwe.PublicKey) *lwe.Ciphertext
	in        Gate
	observers []Observer
}

func (g *unaryGate) Evaluate(pk *lwe.PublicKey, inputs []*lwe.Ciphertext) *lwe.Ciphertext {
	return evaluate(g, g.prog, pk, inputs)
}

func (g *unaryGate) eval(e *evaluation) (*lwe.Ciphertext, error) {
	return e.memo(g.slot, func() (*lwe.Ciphertext, error) {
		in, err := g.in.eval(e)
		if err != nil {
			return nil, err
		}
		out := g.op(in, e.pk)
		notifyUnary(g.observers, g.typ, in, out)
		return out, nil
	})
}

type binaryGate struct {
	gateBase
	op          binaryFunc
	left, right Gate
	observers   []Observer
}

func (g *binaryGate) Evaluate(pk *lwe.PublicKey, inputs []*lwe.Ciphertext) *lwe.Ciphertext {
	return evaluate(g, g.prog, pk, inputs)
}

func (g *binaryGate) eval(e *evaluation) (*lwe.Ciphertext, error) {
	return e.memo(g.slot, func() (*lwe.Ciphertext, error) {
		left, right, err := g.operands(e)
		if err != nil {
			return nil, err
		}
		out := g.op(left, right, e.pk)
		notifyBinary(g.observers, g.typ, left, right, out, "")
		notifyBinary(g.observers, g.typ, left, right, g.op(right, left, e.pk), RevInput)
		return out, nil
	})
}

// operands evaluates both children, the left one on another goroutine when
// the evaluation is parallel and a worker is free.
func (g *binaryGate) operands(e *evaluation) (left, right *lwe.Ciphertext, err error) {
	if e.sem == nil || !e.sem.TryAcquire(1) {
		if left, err = g.left.eval(e); err != nil {
			return nil, nil, err
		}
		if right, err = g.right.eval(e); err != nil {
			return nil, nil, err
		}
		return left, right, nil
	}

	eg, ctx := errgroup.WithContext(e.ctx)
	eg.Go(func() error {
		defer e.sem.Release(1)
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		left, err = g.left.eval(e)
		return err
	})
	right, err = g.right.eval(e)
	if werr := eg.Wait(); werr != nil {
		return nil, nil, werr
	}
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
