package circuit

// DepthCounter receives the noise depth of a compiled node.
type DepthCounter interface {
	RegisterDepth(depth int)
}

// Depth is a DepthCounter that keeps the last registered value.
type Depth struct {
	value int
}

func (d *Depth) RegisterDepth(depth int) {
	d.value = depth
}

func (d *Depth) Value() int {
	return d.value
}
