// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvcomp

import (
	"github.com/vigna/webgraph/internal/bitio"
	"github.com/vigna/webgraph/internal/errkit"
)

// referentFunc resolves a referent node's fully-flattened successor
// list and the reference-chain depth it was decoded at. The sequential
// decoder serves this from its window cache in O(1); a random-access
// decoder instead recurses, bounded by Flags.MaxRefCount.
type referentFunc func(refID int) (succ []uint64, depth int)

// decodeNode reads one node's encoding from br and reconstructs its
// successor list, mirroring Encoder.Push's phase order exactly.
func decodeNode(br *bitio.Reader, flags Flags, id int, getReferent referentFunc) (succ []uint64, hadRef bool, refDepth int) {
	d := int(br.ReadCode(flags.Outdegrees, flags.ZetaK))
	if d == 0 {
		return nil, false, 0
	}

	refDist := 0
	if flags.referencesEnabled() {
		refDist = int(br.ReadCode(flags.References, flags.ZetaK))
	}

	var copied []uint64
	if refDist > 0 {
		refList, depth := getReferent(id - refDist)
		blockCount := int(br.ReadCode(flags.Blocks, flags.ZetaK))
		runs := make([]int, blockCount)
		for k := range runs {
			runs[k] = int(br.ReadCode(flags.Blocks, flags.ZetaK))
		}
		copied = replayBlockRuns(refList, runs)
		hadRef, refDepth = true, depth
	}

	var ivs []interval
	if flags.intervalsEnabled() {
		numIv := int(br.ReadCode(flags.Intervals, flags.ZetaK))
		prevEnd := 0
		for k := 0; k < numIv; k++ {
			var start int
			if k == 0 {
				g := br.ReadCode(flags.Intervals, flags.ZetaK)
				start = id + int(bitio.Unzigzag(g))
			} else {
				g := br.ReadCode(flags.Intervals, flags.ZetaK)
				start = prevEnd + int(g) + 2
			}
			length := int(br.ReadCode(flags.Intervals, flags.ZetaK)) + flags.MinIntervalLength
			ivs = append(ivs, interval{start: start, length: length})
			prevEnd = start + length - 1
		}
	}

	numRes := int(br.ReadCode(flags.Residuals, flags.ZetaK))
	var residuals []uint64
	prev := 0
	for k := 0; k < numRes; k++ {
		var v int
		if k == 0 {
			g := br.ReadCode(flags.Residuals, flags.ZetaK)
			v = id + int(bitio.Unzigzag(g))
		} else {
			g := br.ReadCode(flags.Residuals, flags.ZetaK)
			v = prev + int(g) + 1
		}
		residuals = append(residuals, uint64(v))
		prev = v
	}

	succ = mergeSortedAppend(copied, ivs, residuals)
	if len(succ) != d {
		errkit.Panic(errkit.Truncated, "bvcomp: node %d decoded %d successors, expected %d", id, len(succ), d)
	}
	return succ, hadRef, refDepth
}

// SequentialDecoder reverses Encoder in strict node order, resolving
// references from a window cache rather than recursion.
type SequentialDecoder struct {
	br     *bitio.Reader
	flags  Flags
	nextID int
	win    *window
}

// NewSequentialDecoder constructs a decoder starting at firstNodeID,
// the counterpart of Encoder's FirstNodeID chunk offset.
func NewSequentialDecoder(br *bitio.Reader, flags Flags, firstNodeID int) *SequentialDecoder {
	return &SequentialDecoder{
		br:     br,
		flags:  flags,
		nextID: firstNodeID,
		win:    newWindow(flags.Window),
	}
}

// Next decodes the next node's id and successor list.
func (d *SequentialDecoder) Next() (id int, succ []uint64, err error) {
	defer errkit.Recover(&err)

	id = d.nextID
	d.nextID++

	getReferent := func(refID int) ([]uint64, int) {
		ent, ok := d.win.get(refID)
		if !ok {
			errkit.Panic(errkit.Truncated, "bvcomp: reference to node %d fell outside the window", refID)
		}
		return ent.succ, ent.depth
	}

	var hadRef bool
	var refDepth int
	succ, hadRef, refDepth = decodeNode(d.br, d.flags, id, getReferent)
	depth := 0
	if hadRef {
		depth = refDepth + 1
	}
	d.win.push(id, succ, depth, false)
	return id, succ, nil
}

// DecodeRandom decodes a single node without a window cache, resolving
// any reference by recursively decoding the referent from a bit reader
// the caller positions via seek. This is the path spec §4.3's
// random-access reader uses; recursion never exceeds Flags.MaxRefCount.
func DecodeRandom(flags Flags, id int, seek func(id int) *bitio.Reader) (succ []uint64, err error) {
	defer errkit.Recover(&err)
	succ, _, _ = decodeRandomNode(flags, id, seek)
	return succ, nil
}

func decodeRandomNode(flags Flags, id int, seek func(id int) *bitio.Reader) (succ []uint64, hadRef bool, depth int) {
	br := seek(id)
	getReferent := func(refID int) ([]uint64, int) {
		refSucc, refHadRef, refDepth := decodeRandomNode(flags, refID, seek)
		d := 0
		if refHadRef {
			d = refDepth + 1
		}
		return refSucc, d
	}
	return decodeNode(br, flags, id, getReferent)
}
