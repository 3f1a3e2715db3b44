package wordops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/succinctgo/ranksel/internal/wordops"
)

func TestSetClearTest(t *testing.T) {
	data := make([]uint64, wordops.WordsFor(130))
	wordops.Set(data, 0)
	wordops.Set(data, 63)
	wordops.Set(data, 64)
	wordops.Set(data, 129)

	assert.True(t, wordops.Test(data, 0))
	assert.True(t, wordops.Test(data, 63))
	assert.True(t, wordops.Test(data, 64))
	assert.True(t, wordops.Test(data, 129))
	assert.False(t, wordops.Test(data, 1))

	wordops.Clear(data, 63)
	assert.False(t, wordops.Test(data, 63))
}

func TestPopCountRange(t *testing.T) {
	data := []uint64{0xFFFFFFFFFFFFFFFF, 0, 0x0F}
	assert.Equal(t, uint64(64), wordops.PopCountRange(data, 0, 1))
	assert.Equal(t, uint64(0), wordops.PopCountRange(data, 1, 2))
	assert.Equal(t, uint64(68), wordops.PopCountRange(data, 0, 3))
}

func TestMaskLow(t *testing.T) {
	assert.Equal(t, uint64(0), wordops.MaskLow(0))
	assert.Equal(t, uint64(0x0F), wordops.MaskLow(4))
	assert.Equal(t, ^uint64(0), wordops.MaskLow(64))
}

func TestWordsFor(t *testing.T) {
	assert.Equal(t, uint64(0), wordops.WordsFor(0))
	assert.Equal(t, uint64(1), wordops.WordsFor(1))
	assert.Equal(t, uint64(1), wordops.WordsFor(64))
	assert.Equal(t, uint64(2), wordops.WordsFor(65))
}
