package wavelet

import (
	"github.com/succinctgo/ranksel/bitvector"
	"github.com/succinctgo/ranksel/log"
)

// RLE is a run-length compressed wavelet tree: a Balanced tree over the
// sequence of run *heads* (one entry per maximal run of equal values), plus
// two SparseBitVectors recording where runs end in the original sequence and
// how the per-value run lengths accumulate, so querying a position still
// costs O(log(alphabet)) rather than O(number of runs) (spec §4.6).
type RLE struct {
	head    *Balanced
	runEnd  *bitvector.SparseBitVector
	runLen  *bitvector.SparseBitVector
	numRank []uint64
}

// BuildRLE builds an RLE wavelet tree over values.
func BuildRLE(values []uint64) *RLE {
	r := &RLE{}
	if len(values) == 0 {
		r.head = BuildBalanced(nil, 0)
		r.runEnd = bitvector.NewSparseBitVector(nil)
		r.runLen = bitvector.NewSparseBitVector(nil)
		return r
	}

	head := []uint64{values[0]}
	var runEndPos []uint64
	var run [][]uint64
	runPos := uint64(0)

	for i, v := range values {
		if v != head[len(head)-1] {
			last := head[len(head)-1]
			runEndPos = append(runEndPos, uint64(i))
			for uint64(len(run)) <= last {
				run = append(run, nil)
			}
			run[last] = append(run[last], runPos)
			head = append(head, v)
			runPos = 0
		}
		runPos++
	}
	last := head[len(head)-1]
	runEndPos = append(runEndPos, uint64(len(values)))
	for uint64(len(run)) <= last {
		run = append(run, nil)
	}
	run[last] = append(run[last], runPos)

	r.runEnd = bitvector.NewSparseBitVector(runEndPos)

	numRank := make([]uint64, len(run))
	var runLens []uint64
	var total uint64
	for i := range run {
		numRank[i] = uint64(len(runLens))
		for _, rl := range run[i] {
			total += rl
			runLens = append(runLens, total-1)
		}
	}
	r.numRank = numRank
	r.head = BuildBalanced(head, 0)
	r.runLen = bitvector.NewSparseBitVector(runLens)

	log.Debug.Printf("wavelet: built RLE size=%d runs=%d bitSize=%d", r.Size(), len(head), r.BitSize())
	return r
}

// headPos maps a position in the original sequence to an index in the run
// head sequence: the index of the run pos falls within.
func (r *RLE) headPos(pos uint64) uint64 {
	return r.runEnd.Rank(pos+1, true)
}

// runRank returns how many elements equal to x are accounted for by the
// first `runs` runs of x.
func (r *RLE) runRank(x, runs uint64) uint64 {
	if runs == 0 {
		return 0
	}
	return r.runLen.Select(r.numRank[x]+runs, true) - r.runLen.Select(r.numRank[x], true)
}

// Rank returns the number of elements equal to value in [0, pos).
func (r *RLE) Rank(pos, value uint64) uint64 {
	if pos == 0 {
		return 0
	}
	rpos := r.headPos(pos)
	it := r.head.Iterator()
	eq := true
	hrank := rpos
	for {
		bit := value >= it.SplitValue()
		if hrank >= it.Count() || it.At(hrank) != bit {
			eq = false
		}
		hrank = it.Rank(hrank, bit)
		if it.IsLeaf() {
			break
		}
		it = it.Child(bit)
	}
	begin := r.runRank(value, hrank)
	if !eq {
		return begin
	}
	var runStart uint64
	if rpos != 0 {
		runStart = r.runEnd.Select(rpos, true) - 1
	}
	end := pos - runStart
	return begin + end
}

// RankLE returns the number of elements <= value in [0, pos).
func (r *RLE) RankLE(pos, value uint64) uint64 {
	if pos == 0 {
		return 0
	}
	rpos := r.headPos(pos)
	lt := true
	begin := r.rankLE(r.head.Iterator(), rpos, value, &lt)
	if !lt {
		return begin
	}
	var runStart uint64
	if rpos != 0 {
		runStart = r.runEnd.Select(rpos, true) - 1
	}
	end := pos - runStart
	return begin + end
}

// rankLE walks the head tree for rankLE, tracking in *lt whether the head
// value found at pos is <= value (used to decide whether the partial run at
// pos needs the +end correction applied by the caller).
// A nil lt means the answer is already settled for this subtree.
func (r *RLE) rankLE(it BalancedIterator, pos, value uint64, lt *bool) uint64 {
	if it.Count() == 0 {
		return 0
	}
	pos1 := it.Rank(pos, true)
	pos0 := pos - pos1
	split := it.SplitValue()
	b := value >= split
	itb := pos < it.Count() && it.At(pos)

	if !itb && b {
		lt = nil
	}
	if lt != nil && !b && itb {
		*lt = false
	}

	if it.IsLeaf() {
		var ret uint64
		if b {
			ret += r.runRank(split, pos1)
		}
		if pos0 != 0 {
			ret += r.runRank(split-1, pos0)
		}
		return ret
	}
	if b {
		var ret uint64
		ret += r.rankLE(it.Child(false), pos0, value, nil)
		ret += r.rankLE(it.Child(true), pos1, value, lt)
		return ret
	}
	return r.rankLE(it.Child(false), pos0, value, lt)
}

// At returns the value stored at index i.
func (r *RLE) At(i uint64) uint64 {
	return r.head.At(r.headPos(i))
}

// Select is unimplemented: the original source leaves RLEWavelet::select as
// a commented-out stub (see DESIGN.md), so this always reports NotFound.
func (r *RLE) Select(k, value uint64) uint64 {
	return NotFound
}

// Size returns the number of elements.
func (r *RLE) Size() uint64 { return r.runEnd.Size() }

// BitSize returns the total footprint, in bits.
func (r *RLE) BitSize() uint64 {
	total := r.head.BitSize()
	total += r.runEnd.BitSize()
	total += r.runLen.BitSize()
	total += uint64(len(r.numRank)) * 64
	return total
}

var _ Sequence = (*RLE)(nil)
