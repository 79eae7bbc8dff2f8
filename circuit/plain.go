package circuit

import (
	"fmt"
)

// EvaluatePlain evaluates the circuit rooted at n over plaintext bits. It is
// the reference the homomorphic evaluation is checked against.
func (n *Node) EvaluatePlain(inputs []bool) (bool, error) {
	memo := make(map[int]bool)
	onStack := make(map[int]bool)

	var eval func(x *Node) (bool, error)
	eval = func(x *Node) (bool, error) {
		if v, ok := memo[x.id]; ok {
			return v, nil
		}
		if onStack[x.id] {
			return false, fmt.Errorf("%w: cycle through v%d", ErrInvalidTopology, x.id)
		}
		if len(x.inputs) != x.typ.InDegree() {
			return false, fmt.Errorf("%w: v%d (%s) has %d of %d input gates set", ErrInvalidTopology, x.id, x.typ, len(x.inputs), x.typ.InDegree())
		}
		onStack[x.id] = true
		defer delete(onStack, x.id)

		var v bool
		switch {
		case x.typ == INPUT:
			if x.input < 0 || x.input >= len(inputs) {
				return false, fmt.Errorf("%w: input %d of %d", ErrInputIndex, x.input, len(inputs))
			}
			v = inputs[x.input]
		case x.typ.InDegree() == 1:
			a, err := eval(x.inputs[0])
			if err != nil {
				return false, err
			}
			v = x.typ.Apply(a, false)
		case x.typ.InDegree() == 2:
			a, err := eval(x.inputs[0])
			if err != nil {
				return false, err
			}
			b, err := eval(x.inputs[1])
			if err != nil {
				return false, err
			}
			v = x.typ.Apply(a, b)
		default:
			return false, fmt.Errorf("%w: %v", ErrInvalidGateType, x.typ)
		}
		memo[x.id] = v
		return v, nil
	}
	return eval(n)
}
