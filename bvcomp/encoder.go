// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvcomp

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/vigna/webgraph/internal/bitio"
	"github.com/vigna/webgraph/internal/errkit"
)

// Encoder writes one node's successor list at a time to a bitio.Writer,
// choosing a reference, block, interval, and residual decomposition for
// each node per spec §4.2.
type Encoder struct {
	bw          *bitio.Writer
	flags       Flags
	firstNodeID int
	nextID      int
	win         *window
	Arcs        int64 // total successors pushed so far
}

// NewEncoder constructs an Encoder. firstNodeID is the true id of the
// first node that will be pushed; a parallel-compressor worker sets this
// to its chunk's start (s_k) so gap arithmetic stays correct even though
// the chunk's own counter starts at zero (SPEC_FULL.md supplement #1).
func NewEncoder(bw *bitio.Writer, flags Flags, firstNodeID int) *Encoder {
	return &Encoder{
		bw:          bw,
		flags:       flags,
		firstNodeID: firstNodeID,
		nextID:      firstNodeID,
		win:         newWindow(flags.Window),
	}
}

// Push encodes the successor list of the next node and returns the
// number of bits written for that node. The first node of a chunk (or
// any encoder with Window == 0) never emits a reference, per spec §4.4.
func (e *Encoder) Push(succ []uint64) (bitsWritten int64, err error) {
	defer errkit.Recover(&err)

	start := e.bw.BitPos()
	id := e.nextID
	e.nextID++

	sorted := sortUnique(succ)
	d := len(sorted)
	e.bw.WriteCode(e.flags.Outdegrees, uint64(d), e.flags.ZetaK)
	if d == 0 {
		e.win.push(id, sorted, 0, e.flags.referencesEnabled())
		return e.bw.BitPos() - start, nil
	}
	e.Arcs += int64(d)

	iSet := successorSet(sorted)

	refDist, refDepth, refList := 0, 0, []uint64(nil)
	if e.flags.referencesEnabled() && id > e.firstNodeID {
		refDist, refDepth, refList = e.chooseReference(id, iSet)
	}
	if e.flags.referencesEnabled() {
		e.bw.WriteCode(e.flags.References, uint64(refDist), e.flags.ZetaK)
	}

	var copied []uint64
	if refDist > 0 {
		runs, copiedVals := blockRuns(refList, iSet)
		e.bw.WriteCode(e.flags.Blocks, uint64(len(runs)), e.flags.ZetaK)
		for _, r := range runs {
			e.bw.WriteCode(e.flags.Blocks, uint64(r), e.flags.ZetaK)
		}
		copied = copiedVals
	}

	extras := sortedDiff(sorted, copied)

	if e.flags.intervalsEnabled() {
		var intervals []interval
		intervals, extras = extractIntervals(extras, e.flags.MinIntervalLength)
		e.writeIntervals(id, intervals)
	}
	e.writeResiduals(id, extras)

	depth := 0
	if refDist > 0 {
		depth = refDepth + 1
	}
	e.win.push(id, sorted, depth, true)

	return e.bw.BitPos() - start, nil
}

// Flush pads the underlying writer to a byte boundary and returns the
// total number of bits written.
func (e *Encoder) Flush() (int64, error) { return e.bw.Flush() }

// chooseReference implements spec §4.2 step 2: scan the window nearest
// first, maximize |succ(j) ∩ succ(i)|, bound chain depth by MaxRefCount,
// tie-break on distance (satisfied automatically by scanning nearest
// first and only replacing on strictly greater score).
func (e *Encoder) chooseReference(id int, iSet *bitset.BitSet) (dist, depth int, list []uint64) {
	lo := id - e.flags.Window
	if lo < 0 {
		lo = 0
	}
	bestScore := 0
	best := -1
	bestDepth := 0
	var bestList []uint64
	for j := id - 1; j >= lo; j-- {
		ent, ok := e.win.get(j)
		if !ok || len(ent.succ) == 0 {
			continue
		}
		if ent.depth+1 > e.flags.MaxRefCount {
			continue
		}
		score := int(ent.set.IntersectionCardinality(iSet))
		if score > bestScore {
			bestScore = score
			best = j
			bestDepth = ent.depth
			bestList = ent.succ
		}
	}
	if best < 0 {
		return 0, 0, nil
	}
	return id - best, bestDepth, bestList
}

func (e *Encoder) writeIntervals(id int, ivs []interval) {
	e.bw.WriteCode(e.flags.Intervals, uint64(len(ivs)), e.flags.ZetaK)
	prevEnd := 0
	for k, iv := range ivs {
		if k == 0 {
			e.bw.WriteCode(e.flags.Intervals, bitio.Zigzag(int64(iv.start-id)), e.flags.ZetaK)
		} else {
			gap := int64(iv.start - prevEnd - 2)
			e.bw.WriteCode(e.flags.Intervals, uint64(gap), e.flags.ZetaK)
		}
		e.bw.WriteCode(e.flags.Intervals, uint64(iv.length-e.flags.MinIntervalLength), e.flags.ZetaK)
		prevEnd = iv.start + iv.length - 1
	}
}

func (e *Encoder) writeResiduals(id int, residuals []uint64) {
	e.bw.WriteCode(e.flags.Residuals, uint64(len(residuals)), e.flags.ZetaK)
	prev := 0
	for k, v := range residuals {
		if k == 0 {
			e.bw.WriteCode(e.flags.Residuals, bitio.Zigzag(int64(v)-int64(id)), e.flags.ZetaK)
		} else {
			e.bw.WriteCode(e.flags.Residuals, uint64(int64(v)-int64(prev)-1), e.flags.ZetaK)
		}
		prev = int(v)
	}
}

// sortUnique returns a sorted, duplicate-free copy of succ. The BV
// encoding requires a strictly increasing list; spec §3 notes this is
// not guaranteed on input outside of the simplify pipeline's output.
func sortUnique(succ []uint64) []uint64 {
	out := make([]uint64, len(succ))
	copy(out, succ)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, v := range out {
		if i == 0 || v != out[n-1] {
			out[n] = v
			n++
		}
	}
	return out[:n]
}
