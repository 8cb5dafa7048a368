package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestNewOrCrypto(t *testing.T) {
	seeded := NewOrCrypto(7)
	assert.Equal(t, New(7).Uint64(), seeded.Uint64())

	c1, c2 := NewOrCrypto(0), NewOrCrypto(0)
	assert.NotEqual(t, c1.Uint64(), c2.Uint64())
}

func TestCryptoIntNInRange(t *testing.T) {
	rng := NewCrypto()
	for i := 0; i < 1000; i++ {
		n := rng.IntN(52)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 52)
	}
}
