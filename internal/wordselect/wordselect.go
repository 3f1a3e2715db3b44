// Package wordselect implements within-word select: given a 64-bit word and
// a desired rank r in [1, 64], find the 1-based bit position of the r-th set
// bit. It is grounded on the byte-table approach of ahartik/wavelet-tree's
// fast-bit-vector.cpp (BytePop/ByteSelect + WordSelect), translated into the
// lazy-init-once idiom grailbio/base/log's packages use for process-wide
// read-only tables.
package wordselect

import "sync"

var (
	initOnce sync.Once

	bytePop    [256]uint8
	byteSelect [256][8]uint8
)

func initTables() {
	for x := 0; x < 256; x++ {
		c := 0
		for i := 0; i < 8; i++ {
			if x&(1<<uint(i)) != 0 {
				c++
			}
		}
		bytePop[x] = uint8(c)
	}
	for x := 0; x < 256; x++ {
		r := 0
		for i := 0; i < 8; i++ {
			if x&(1<<uint(i)) != 0 {
				byteSelect[x][r] = uint8(i + 1)
				r++
			}
		}
	}
}

func ensureTables() {
	initOnce.Do(initTables)
}

// Select returns the 1-based index of the r-th set bit in v, where
// r must be in [1, popcount(v)]. Behavior is undefined if r is out of range.
func Select(v uint64, r int) int {
	ensureTables()
	for b := 0; b < 8; b++ {
		lane := v & 0xff
		c := int(bytePop[lane])
		if c >= r {
			return b*8 + int(byteSelect[lane][r-1])
		}
		r -= c
		v >>= 8
	}
	// Unreachable if r is within [1, popcount(v)]; the spec treats this as
	// a precondition violation rather than a recoverable error.
	panic("wordselect: rank exceeds word popcount")
}
