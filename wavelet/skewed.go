package wavelet

import (
	"github.com/succinctgo/ranksel/bitvector"
	"github.com/succinctgo/ranksel/log"
	"github.com/succinctgo/ranksel/must"
)

// skewedStartSize is the size of band 0 (spec §4.5: "geometrically growing
// bands StartSize=2, StartBits=1").
const skewedStartSize = 2

// Skewed is a wavelet tree over a non-negative integer alphabet whose bands
// double in size at every level (0..1, 2..5, 6..13, 14..29, ...), so small
// values cost fewer bits than in a Balanced tree of the same alphabet size
// (spec §4.5).
type Skewed struct {
	bands [SkewedMaxLevel]*Balanced
	pick  [SkewedMaxLevel]*bitvector.FastBitVector
	size  uint64
}

// BuildSkewed builds a Skewed wavelet tree over values.
func BuildSkewed(values []uint64) *Skewed {
	var bandValues [SkewedMaxLevel][]uint64
	var pickBits [SkewedMaxLevel][]bool

	for _, v := range values {
		lvl, fix := skewedLevel(v)
		bandValues[lvl] = append(bandValues[lvl], fix)
		for j := 0; j < lvl; j++ {
			pickBits[j] = append(pickBits[j], false)
		}
		pickBits[lvl] = append(pickBits[lvl], true)
	}

	sk := &Skewed{size: uint64(len(values))}
	for lvl := 0; lvl < SkewedMaxLevel; lvl++ {
		sk.pick[lvl] = bitvector.NewFastBitVector(pickBits[lvl])
		sk.bands[lvl] = BuildBalanced(bandValues[lvl], uint64(lvl+1))
	}
	log.Debug.Printf("wavelet: built Skewed size=%d bitSize=%d", sk.size, sk.BitSize())
	return sk
}

// skewedLevel locates which geometrically-growing band x falls in, and its
// offset within that band (spec §4.5's Level()).
func skewedLevel(x uint64) (level int, fix uint64) {
	size := uint64(skewedStartSize)
	start := uint64(0)
	end := uint64(skewedStartSize)
	for i := 0; i < SkewedMaxLevel; i++ {
		if x < end {
			return i, x - start
		}
		size *= 2
		start = end
		end = start + size
	}
	must.Neverf("wavelet: value %d exceeds Skewed's representable range (max level %d)", x, SkewedMaxLevel)
	return 0, 0
}

// Rank returns the number of elements equal to value in [0, pos).
func (sk *Skewed) Rank(pos, value uint64) uint64 {
	lvl, fixed := skewedLevel(value)
	for i := 0; i < lvl; i++ {
		pos = sk.pick[i].Rank(pos, false)
	}
	pos = sk.pick[lvl].Rank(pos, true)
	return sk.bands[lvl].Rank(pos, fixed)
}

// RankLE returns the number of elements <= value in [0, pos).
func (sk *Skewed) RankLE(pos, value uint64) uint64 {
	lvl, fixed := skewedLevel(value)
	var ret uint64
	for i := 0; i < lvl; i++ {
		np := sk.pick[i].Rank(pos, false)
		ret += pos - np
		pos = np
	}
	pos = sk.pick[lvl].Rank(pos, true)
	return ret + sk.bands[lvl].RankLE(pos, fixed)
}

// Size returns the number of elements.
func (sk *Skewed) Size() uint64 { return sk.size }

// BitSize returns the total footprint, in bits.
func (sk *Skewed) BitSize() uint64 {
	ret := uint64(0)
	for i := 0; i < SkewedMaxLevel; i++ {
		ret += sk.pick[i].BitSize()
		ret += sk.bands[i].BitSize()
	}
	return ret
}

// SkewedIterator walks a Skewed tree's virtual subtree: either still on the
// geometric "spine" (choosing which band an element falls in) or delegating
// to a BalancedIterator once the band has been picked (spec §4.5).
type SkewedIterator struct {
	wt         *Skewed
	spine      bool
	level      int
	levelStart uint64
	balanced   BalancedIterator
}

// Iterator returns a fresh root iterator over sk.
func (sk *Skewed) Iterator() SkewedIterator {
	return SkewedIterator{wt: sk, spine: true}
}

// IsLeaf reports whether this node is at the bottom of the tree.
func (it SkewedIterator) IsLeaf() bool {
	if it.spine {
		return it.level == SkewedMaxLevel-1
	}
	return it.balanced.IsLeaf()
}

// SplitValue returns the smallest value routed to this node's right child.
func (it SkewedIterator) SplitValue() uint64 {
	if it.spine {
		return it.levelStart + (uint64(skewedStartSize) << uint(it.level))
	}
	return it.levelStart + it.balanced.SplitValue()
}

// At returns the bit this node holds at local index i.
func (it SkewedIterator) At(i uint64) bool {
	if it.spine {
		return !it.wt.pick[it.level].Bit(i)
	}
	return it.balanced.At(i)
}

// Rank returns the node-local rank of bit in [0, pos).
func (it SkewedIterator) Rank(pos uint64, bit bool) uint64 {
	if it.spine {
		return it.wt.pick[it.level].Rank(pos, !bit)
	}
	return it.balanced.Rank(pos, bit)
}

// Select lifts a node-local rank of bit back to a node-local position.
func (it SkewedIterator) Select(idx uint64, bit bool) uint64 {
	if it.spine {
		return it.wt.pick[it.level].Select(idx, !bit)
	}
	return it.balanced.Select(idx, bit)
}

// Count returns the number of elements at this node.
func (it SkewedIterator) Count() uint64 {
	if it.spine {
		return it.wt.pick[it.level].Size()
	}
	return it.balanced.Count()
}

// Child returns the left (right == false) or right (right == true) child.
func (it SkewedIterator) Child(right bool) SkewedIterator {
	if it.spine {
		if right {
			return SkewedIterator{
				wt:         it.wt,
				spine:      true,
				level:      it.level + 1,
				levelStart: it.levelStart + (uint64(skewedStartSize) << uint(it.level)),
			}
		}
		return SkewedIterator{
			wt:         it.wt,
			spine:      false,
			level:      it.level,
			levelStart: it.levelStart,
			balanced:   it.wt.bands[it.level].Iterator(),
		}
	}
	return SkewedIterator{
		wt:         it.wt,
		spine:      false,
		level:      it.level,
		levelStart: it.levelStart,
		balanced:   it.balanced.Child(right),
	}
}

// At returns the value stored at index i (spec's supplemented read surface:
// the original leaves this to the shared iterator protocol without exposing
// it on SkewedWavelet itself, see DESIGN.md).
func (sk *Skewed) At(i uint64) uint64 {
	must.Truef(i < sk.size, "wavelet: At index %d out of range [0,%d)", i, sk.size)
	it := sk.Iterator()
	for !it.IsLeaf() {
		b := it.At(i)
		next := it.Child(b)
		i = it.Rank(i, b)
		it = next
	}
	must.Truef(!it.spine, "wavelet: At descended to a spine leaf, value out of Skewed's representable range")
	fixed := it.balanced.highBits
	if it.balanced.At(i) {
		fixed |= 1
	}
	return it.levelStart + fixed
}

// Select returns the position of the k-th occurrence of value, mirroring
// Balanced.Select's convention (0 if k is 0, NotFound if value does not
// occur at all).
func (sk *Skewed) Select(k, value uint64) uint64 {
	return skewedSelect(sk.Iterator(), k, value)
}

func skewedSelect(it SkewedIterator, rank, value uint64) uint64 {
	if rank == 0 {
		return 0
	}
	if it.Count() == 0 {
		return NotFound
	}
	bit := value >= it.SplitValue()
	if it.IsLeaf() {
		must.Truef(rank <= it.Rank(it.Count(), bit), "wavelet: Select rank %d exceeds count of value %d", rank, value)
		return it.Select(rank, bit)
	}
	rank = skewedSelect(it.Child(bit), rank, value)
	if rank == NotFound {
		return NotFound
	}
	return it.Select(rank, bit)
}

var _ Sequence = (*Skewed)(nil)
