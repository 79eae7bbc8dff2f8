package utils

// Noise-depth increments of the boolean gates, in the units reported to a
// circuit.DepthCounter. Multiplicative gates grow the noise by one level,
// XOR by two.
const DepthOfInput = 0
const DepthOfNotGate = 0
const DepthOfMulGate = 1
const DepthOfXorGate = 2
