// Package instrument provides circuit observers that count, log and measure
// the gates evaluated by a compiled circuit.
package instrument

import (
	"sync"

	"github.com/PolyhedraZK/FHECircuitCompiler/circuit"
	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

type key struct {
	t       circuit.GateType
	comment string
}

// Counter counts the reports it receives per gate type and comment.
type Counter struct {
	mu     sync.Mutex
	counts map[key]int
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[key]int)}
}

func (c *Counter) Unary(t circuit.GateType, in, out *lwe.Ciphertext) error {
	c.add(t, "")
	return nil
}

func (c *Counter) Binary(t circuit.GateType, left, right, out *lwe.Ciphertext, comment string) error {
	c.add(t, comment)
	return nil
}

func (c *Counter) add(t circuit.GateType, comment string) {
	c.mu.Lock()
	c.counts[key{t, comment}]++
	c.mu.Unlock()
}

// Count returns the number of reports of gates of type t tagged comment.
func (c *Counter) Count(t circuit.GateType, comment string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key{t, comment}]
}

// Evaluated returns the number of gates evaluated, not counting the
// reversed-operand reports.
func (c *Counter) Evaluated() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, v := range c.counts {
		if k.comment == "" {
			n += v
		}
	}
	return n
}

func (c *Counter) Reset() {
	c.mu.Lock()
	clear(c.counts)
	c.mu.Unlock()
}
