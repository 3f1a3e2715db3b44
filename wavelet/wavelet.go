// Package wavelet implements wavelet trees over non-negative integer
// sequences: Balanced (fixed bit-width), Skewed (variable bit-width,
// favoring small values), and RLE (run-length compressed). All three reduce
// rank/rankLE/select/indexing to a sequence of bitvector.FastBitVector
// rank/select calls.
//
// Grounded on ahartik/wavelet-tree's balanced-wavelet.h, skewed-wavelet.h and
// rle-wavelet.h (see _examples/original_source), in the builder/freeze idiom
// used throughout this module (see bitvector.Builder).
package wavelet

import "github.com/succinctgo/ranksel/bitvector"

// NotFound is returned by Select when no position satisfies the query.
const NotFound = bitvector.NotFound

// SkewedMaxLevel bounds the number of spine levels in a Skewed tree (spec
// §6: "MaxLevel in SkewedWavelet: 60-64").
const SkewedMaxLevel = 60

// Sequence is the query surface shared by Balanced, Skewed and RLE (spec
// §6).
type Sequence interface {
	// Rank returns the number of elements equal to value in [0, pos).
	Rank(pos, value uint64) uint64
	// RankLE returns the number of elements <= value in [0, pos).
	RankLE(pos, value uint64) uint64
	// Select returns the position of the (k)-th occurrence of value (1
	// indexed via the shared bit-vector convention: Select(0, v) == 0), or
	// NotFound.
	Select(k, value uint64) uint64
	// At returns the value stored at index i.
	At(i uint64) uint64
	// Size returns the number of elements.
	Size() uint64
	// BitSize returns the total footprint, in bits.
	BitSize() uint64
}
