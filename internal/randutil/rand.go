package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Seeded generators are for tests and reproducible simulations only; live
// shoes use NewCrypto.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewCrypto returns a *rand.Rand whose every value is read from the
// operating system's cryptographic random source, so shuffles cannot be
// predicted or replayed from a seed.
func NewCrypto() *rand.Rand {
	return rand.New(cryptoSource{})
}

// NewOrCrypto returns New(seed) for a non-zero seed and NewCrypto otherwise.
func NewOrCrypto(seed int64) *rand.Rand {
	if seed == 0 {
		return NewCrypto()
	}
	return New(seed)
}

type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand.Read only fails when the kernel source is unusable.
		panic("randutil: crypto/rand unavailable: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
