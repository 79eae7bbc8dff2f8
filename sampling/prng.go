package sampling

import (
	"crypto/rand"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for secure generation of random bytes
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG reads from the operating system's CSPRNG.
type ThreadSafePRNG struct{}

// NewPRNG returns a new PRNG that is thread-safe
func NewPRNG() *ThreadSafePRNG {
	return &ThreadSafePRNG{}
}

func (prng *ThreadSafePRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}

// KeyedPRNG deterministically expands a key into a stream of bytes with the
// blake2b XOF. Two KeyedPRNG created with the same key produce the same
// stream, which makes key generation and encryption reproducible in tests.
// A KeyedPRNG created with a nil key is NOT secure.
type KeyedPRNG struct {
	mutex sync.Mutex
	key   []byte
	xof   blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG. The key must be at most
// 64 bytes long.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, err
	}
	prng := &KeyedPRNG{xof: xof}
	prng.key = append([]byte(nil), key...)
	return prng, nil
}

// Key returns a copy of the key used to seed the PRNG.
func (prng *KeyedPRNG) Key() []byte {
	return append([]byte(nil), prng.key...)
}

// Read is safe for concurrent use, but the interleaving of concurrent
// readers decides who gets which part of the stream.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(sum)
}

// Reset rewinds the PRNG to the beginning of its stream.
func (prng *KeyedPRNG) Reset() {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	prng.xof.Reset()
}
