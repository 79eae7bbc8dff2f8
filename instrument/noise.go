package instrument

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/montanaflynn/stats"

	"github.com/PolyhedraZK/FHECircuitCompiler/circuit"
	"github.com/PolyhedraZK/FHECircuitCompiler/lwe"
)

// ErrMismatch is returned by NoiseObserver when a gate output does not
// decrypt to the gate applied to its decrypted operands.
var ErrMismatch = errors.New("gate output does not match its operands")

// NoiseSummary describes the absolute noise of the outputs of one kind of
// gate report.
type NoiseSummary struct {
	Count  int
	Mean   float64
	Max    float64
	StdDev float64
	P95    float64
}

// NoiseObserver decrypts every reported ciphertext with the secret key and
// records the noise of gate outputs. It is meant for tests and parameter
// exploration, it must never be fed a production secret key.
type NoiseObserver struct {
	scheme *lwe.Scheme
	sk     *lwe.SecretKey

	mu         sync.Mutex
	samples    map[key][]float64
	mismatches int
}

func NewNoiseObserver(scheme *lwe.Scheme, sk *lwe.SecretKey) *NoiseObserver {
	return &NoiseObserver{
		scheme:  scheme,
		sk:      sk,
		samples: make(map[key][]float64),
	}
}

func (o *NoiseObserver) Unary(t circuit.GateType, in, out *lwe.Ciphertext) error {
	a := o.scheme.Decrypt(in, o.sk)
	return o.record(t, "", t.Apply(a, false), out)
}

func (o *NoiseObserver) Binary(t circuit.GateType, left, right, out *lwe.Ciphertext, comment string) error {
	a := o.scheme.Decrypt(left, o.sk)
	b := o.scheme.Decrypt(right, o.sk)
	return o.record(t, comment, t.Apply(a, b), out)
}

func (o *NoiseObserver) record(t circuit.GateType, comment string, want bool, out *lwe.Ciphertext) error {
	got, noise := o.scheme.Noise(out, o.sk)
	v, _ := new(big.Float).SetInt(noise.Abs(noise)).Float64()

	o.mu.Lock()
	defer o.mu.Unlock()
	k := key{t, comment}
	o.samples[k] = append(o.samples[k], v)
	if got != want {
		o.mismatches++
		return fmt.Errorf("%w: %s %s decrypts to %v", ErrMismatch, t, comment, got)
	}
	return nil
}

// Mismatches is the number of outputs that decrypted to a wrong bit.
func (o *NoiseObserver) Mismatches() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mismatches
}

// Summary returns the noise statistics of the outputs of gates of type t
// reported with comment. ok is false when no such gate was reported.
func (o *NoiseObserver) Summary(t circuit.GateType, comment string) (s NoiseSummary, ok bool) {
	o.mu.Lock()
	data := stats.Float64Data(append([]float64(nil), o.samples[key{t, comment}]...))
	o.mu.Unlock()
	if len(data) == 0 {
		return NoiseSummary{}, false
	}
	return summarize(data), true
}

// Overall summarizes the noise of every recorded output.
func (o *NoiseObserver) Overall() (NoiseSummary, bool) {
	o.mu.Lock()
	var data stats.Float64Data
	for _, v := range o.samples {
		data = append(data, v...)
	}
	o.mu.Unlock()
	if len(data) == 0 {
		return NoiseSummary{}, false
	}
	return summarize(data), true
}

func summarize(data stats.Float64Data) NoiseSummary {
	mean, _ := stats.Mean(data)
	maxv, _ := stats.Max(data)
	stddev, _ := stats.StandardDeviation(data)
	p95, _ := stats.Percentile(data, 95)
	return NoiseSummary{
		Count:  len(data),
		Mean:   mean,
		Max:    maxv,
		StdDev: stddev,
		P95:    p95,
	}
}
