package wavelet

import (
	"github.com/succinctgo/ranksel/bitvector"
	"github.com/succinctgo/ranksel/log"
	"github.com/succinctgo/ranksel/must"
)

// Balanced is a wavelet tree over a fixed-bit-width alphabet: a binary tree
// of height bits, with every level's bit string concatenated, in level
// order, into a single FastBitVector (spec §4.4, §4.7).
type Balanced struct {
	tree *bitvector.FastBitVector
	size uint64
	bits uint64
}

// BuildBalanced builds a Balanced wavelet tree over values, each of which
// must be strictly less than 1<<bits. If bits == 0, the width is derived as
// 1 + floor(log2(max(values))) (spec §4.4: "caller-supplied or derived from
// 1 + floor(log2(max))").
func BuildBalanced(values []uint64, bits uint64) *Balanced {
	if bits == 0 {
		var max uint64
		for _, v := range values {
			if v > max {
				max = v
			}
		}
		bits = 1
		for (uint64(1) << bits) <= max {
			bits++
		}
	}
	for _, v := range values {
		must.Truef(v < (uint64(1) << bits), "wavelet: value %d exceeds declared bit width %d", v, bits)
	}

	tree := buildLevelOrderBits(values, bits)
	w := &Balanced{tree: tree, size: uint64(len(values)), bits: bits}
	log.Debug.Printf("wavelet: built Balanced size=%d bits=%d bitSize=%d", w.size, w.bits, w.BitSize())
	return w
}

// buildLevelOrderBits concatenates, level by level (MSB first), the bit read
// at the current level by every element, grouped by the node it currently
// occupies (BFS / level-order, per spec §4.7). Because the tree has a fixed
// bit width, every level holds exactly len(values) bits in total, split
// across nodes in left-to-right order.
func buildLevelOrderBits(values []uint64, bits uint64) *bitvector.FastBitVector {
	n := uint64(len(values))
	b := bitvector.NewBuilder(n * bits)

	groups := [][]uint64{values}
	for level := int64(bits) - 1; level >= 0; level-- {
		var next [][]uint64
		for _, g := range groups {
			var left, right []uint64
			for _, v := range g {
				bit := (v>>uint(level))&1 != 0
				b.Add(bit)
				if bit {
					right = append(right, v)
				} else {
					left = append(left, v)
				}
			}
			if level > 0 {
				if len(left) > 0 {
					next = append(next, left)
				}
				if len(right) > 0 {
					next = append(next, right)
				}
			}
		}
		groups = next
	}
	return b.Freeze()
}

// BalancedIterator is a small, copyable value representing a virtual
// subtree node within a Balanced tree's flat bit-vector, per spec §4.4.
type BalancedIterator struct {
	tree      *bitvector.FastBitVector
	highBits  uint64
	length    uint64
	offset    uint64
	bitIndex  uint64
	beginRank uint64
	endRank   uint64
	levelSkip uint64
}

// Iterator returns a fresh root iterator over w.
func (w *Balanced) Iterator() BalancedIterator {
	it := BalancedIterator{
		tree:      w.tree,
		length:    w.size,
		bitIndex:  w.bits - 1,
		levelSkip: w.size,
	}
	it.endRank = w.tree.Rank(w.size, true)
	return it
}

// SplitValue returns the smallest value routed to this node's right child.
func (it BalancedIterator) SplitValue() uint64 {
	return it.highBits + (uint64(1) << it.bitIndex)
}

// IsLeaf reports whether this node is at the bottom of the tree.
func (it BalancedIterator) IsLeaf() bool {
	return it.bitIndex == 0
}

// Child returns the left (right == false) or right (right == true) child.
func (it BalancedIterator) Child(right bool) BalancedIterator {
	child := BalancedIterator{
		tree:      it.tree,
		bitIndex:  it.bitIndex - 1,
		levelSkip: it.levelSkip,
	}
	if right {
		child.offset = it.offset + it.levelSkip + (it.length - it.endRank)
		child.length = it.endRank
		child.highBits = it.highBits + (uint64(1) << it.bitIndex)
	} else {
		child.offset = it.offset + it.levelSkip
		child.highBits = it.highBits
		child.length = it.length - it.endRank
	}
	child.beginRank = it.tree.Rank(child.offset, true)
	child.endRank = it.tree.Rank(child.offset+child.length, true) - child.beginRank
	return child
}

// At returns the bit this node holds at local index i.
func (it BalancedIterator) At(i uint64) bool {
	return it.tree.Bit(it.offset + i)
}

// Rank returns the node-local rank of bit in [0, pos).
func (it BalancedIterator) Rank(pos uint64, bit bool) uint64 {
	var orank uint64
	if bit {
		orank = it.beginRank
	} else {
		orank = it.offset - it.beginRank
	}
	return it.tree.Rank(it.offset+pos, bit) - orank
}

// Select lifts a node-local rank of bit back to a node-local position.
func (it BalancedIterator) Select(idx uint64, bit bool) uint64 {
	var orank uint64
	if bit {
		orank = it.beginRank
	} else {
		orank = it.offset - it.beginRank
	}
	return it.tree.Select(idx+orank, bit) - it.offset
}

// Count returns the number of elements at this node.
func (it BalancedIterator) Count() uint64 {
	return it.length
}

// Rank returns the number of elements equal to value in [0, pos).
func (w *Balanced) Rank(pos, value uint64) uint64 {
	must.Truef(pos <= w.size, "wavelet: Rank position %d exceeds size %d", pos, w.size)
	it := w.Iterator()
	for {
		bit := value >= it.SplitValue()
		pos = it.Rank(pos, bit)
		if it.IsLeaf() {
			break
		}
		it = it.Child(bit)
	}
	return pos
}

// RankLE returns the number of elements <= value in [0, pos).
func (w *Balanced) RankLE(pos, value uint64) uint64 {
	must.Truef(pos <= w.size, "wavelet: RankLE position %d exceeds size %d", pos, w.size)
	var ret uint64
	it := w.Iterator()
	for {
		bit := value >= it.SplitValue()
		np := it.Rank(pos, bit)
		if bit {
			ret += pos - np
		}
		pos = np
		if it.IsLeaf() {
			break
		}
		it = it.Child(bit)
	}
	return pos + ret
}

// At returns the value stored at index i.
func (w *Balanced) At(i uint64) uint64 {
	must.Truef(i < w.size, "wavelet: At index %d out of range [0,%d)", i, w.size)
	it := w.Iterator()
	for !it.IsLeaf() {
		b := it.At(i)
		next := it.Child(b)
		i = it.Rank(i, b)
		it = next
	}
	result := it.highBits
	if it.At(i) {
		result |= 1
	}
	return result
}

// Select returns the position of the k-th occurrence of value, or 0 if k is
// 0, or NotFound if value does not occur at all. An occurrence count
// greater than the actual count of a value that does occur is a
// precondition violation and panics, like bitvector.FastBitVector.Select
// (spec §4.4, extending the
// original source's early-out per the REDESIGN FLAG decision recorded in
// DESIGN.md).
func (w *Balanced) Select(k, value uint64) uint64 {
	return balancedSelect(w.Iterator(), k, value)
}

func balancedSelect(it BalancedIterator, rank, value uint64) uint64 {
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
	rank = balancedSelect(it.Child(bit), rank, value)
	if rank == NotFound {
		return NotFound
	}
	return it.Select(rank, bit)
}

// Size returns the number of elements.
func (w *Balanced) Size() uint64 { return w.size }

// BitSize returns the total footprint, in bits.
func (w *Balanced) BitSize() uint64 {
	return w.tree.BitSize() + 2*64
}

var _ Sequence = (*Balanced)(nil)
