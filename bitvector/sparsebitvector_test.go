package bitvector_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/succinctgo/ranksel/bitvector"
)

func TestSparseBitVectorShort(t *testing.T) {
	positions := []uint64{1, 2, 4}
	s := bitvector.NewSparseBitVector(positions)

	assert.Equal(t, uint64(5), s.Size())
	assert.Equal(t, uint64(3), s.Count(true))

	assert.False(t, s.Bit(0))
	assert.True(t, s.Bit(1))
	assert.True(t, s.Bit(2))
	assert.False(t, s.Bit(3))
	assert.True(t, s.Bit(4))

	assert.Equal(t, uint64(0), s.Rank(0, true))
	assert.Equal(t, uint64(0), s.Rank(1, true))
	assert.Equal(t, uint64(1), s.Rank(2, true))
	assert.Equal(t, uint64(2), s.Rank(3, true))
	assert.Equal(t, uint64(2), s.Rank(4, true))
	assert.Equal(t, uint64(3), s.Rank(5, true))

	assert.Equal(t, uint64(2), s.Select(1, true))
	assert.Equal(t, uint64(3), s.Select(2, true))
	assert.Equal(t, uint64(5), s.Select(3, true))
}

func TestSparseBitVectorEmpty(t *testing.T) {
	s := bitvector.NewSparseBitVector(nil)
	assert.Equal(t, uint64(0), s.Size())
	assert.Equal(t, uint64(0), s.Count(true))
	assert.Equal(t, uint64(0), s.Select(0, true))
}

func TestSparseBitVectorAgainstFastBitVector(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 15; trial++ {
		n := rng.Intn(4000) + 1
		data := make([]bool, n)
		var positions []uint64
		for i := range data {
			// Keep it genuinely sparse so the Elias-Fano split is exercised.
			if rng.Intn(20) == 0 {
				data[i] = true
				positions = append(positions, uint64(i))
			}
		}
		sparse := bitvector.NewSparseBitVector(positions)
		dense := bitvector.NewFastBitVector(data)

		for i := 0; i <= 20; i++ {
			// The sparse vector's size ends one past its last set position,
			// so compare ranks only up to that size.
			pos := uint64(rng.Intn(int(sparse.Size()) + 1))
			assert.Equal(t, dense.Rank(pos, true), sparse.Rank(pos, true))
			assert.Equal(t, dense.Rank(pos, false), sparse.Rank(pos, false))
		}
		for k := 1; k <= len(positions) && k <= 20; k++ {
			assert.Equal(t, dense.Select(uint64(k), true), sparse.Select(uint64(k), true))
		}
	}
}

func TestSparseBitVectorRankAtSizeBucketAligned(t *testing.T) {
	// The largest set position is 2^w-1 (w == SparseLowBitWidth), so size is
	// an exact multiple of 2^w and Rank(size, ...) must locate the bucket
	// strictly past the last one without reading past the high-bit array.
	positions := []uint64{bitvector.SparseLowBitWidth*0 + (1<<bitvector.SparseLowBitWidth - 1)}
	s := bitvector.NewSparseBitVector(positions)
	assert.Equal(t, uint64(1), s.Rank(s.Size(), true))
	assert.Equal(t, uint64(15), s.Rank(s.Size(), false))
}

func TestSparseBitVectorStrictlyIncreasingRequired(t *testing.T) {
	assert.Panics(t, func() {
		bitvector.NewSparseBitVector([]uint64{3, 3, 5})
	})
	assert.Panics(t, func() {
		bitvector.NewSparseBitVector([]uint64{5, 2})
	})
}
