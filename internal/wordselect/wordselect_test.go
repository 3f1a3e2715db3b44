package wordselect_test

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/succinctgo/ranksel/internal/wordselect"
)

func TestSelectKnownWord(t *testing.T) {
	// 0b...10110 : bits set at 1, 2, 4 (0-indexed from LSB).
	v := uint64(0b10110)
	assert.Equal(t, 2, wordselect.Select(v, 1))
	assert.Equal(t, 3, wordselect.Select(v, 2))
	assert.Equal(t, 5, wordselect.Select(v, 3))
}

func TestSelectAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 200; trial++ {
		v := rng.Uint64()
		pop := bits.OnesCount64(v)
		if pop == 0 {
			continue
		}
		r := rng.Intn(pop) + 1

		want := 0
		seen := 0
		for b := 0; b < 64; b++ {
			if v&(1<<uint(b)) != 0 {
				seen++
				if seen == r {
					want = b + 1
					break
				}
			}
		}
		assert.Equal(t, want, wordselect.Select(v, r))
	}
}

func TestSelectOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { wordselect.Select(0b101, 3) })
}
