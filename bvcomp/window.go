// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvcomp

import "github.com/bits-and-blooms/bitset"

// entry caches one node's fully resolved (flattened) successor list
// together with the reference-chain depth it was encoded at, so that a
// later node choosing it as a referent never has to re-walk the chain.
type entry struct {
	id    int
	succ  []uint64
	depth int
	set   *bitset.BitSet // membership bitset over succ for candidate scoring; nil unless push was asked to build it
}

// window is a ring buffer holding the last W nodes' resolved successor
// lists, indexed by absolute node id. It backs both the encoder's
// reference-candidate search and the sequential decoder's O(1) referent
// lookup; per spec §9 ("Design Notes"), this bounds per-pass memory to
// O(W) regardless of graph size.
type window struct {
	w   int
	buf []entry // ring buffer of capacity w (or 1 if w == 0, unused)
}

func newWindow(w int) *window {
	cap := w
	if cap < 1 {
		cap = 1
	}
	return &window{w: w, buf: make([]entry, cap)}
}

// push records id's resolved successor list. needSet controls whether a
// membership bitset is built eagerly (the encoder needs it for scoring
// future candidates; a pure decoder never does).
func (win *window) push(id int, succ []uint64, depth int, needSet bool) {
	if win.w == 0 {
		return
	}
	slot := &win.buf[id%len(win.buf)]
	*slot = entry{id: id, succ: succ, depth: depth}
	if needSet {
		slot.set = successorSet(succ)
	}
}

// get returns the cached entry for id, if it is still within the window.
func (win *window) get(id int) (entry, bool) {
	if win.w == 0 || id < 0 {
		return entry{}, false
	}
	slot := win.buf[id%len(win.buf)]
	if slot.id != id {
		return entry{}, false
	}
	return slot, true
}

// successorSet builds a membership bitset over a (sorted) successor
// list, sized to the largest value present.
func successorSet(succ []uint64) *bitset.BitSet {
	if len(succ) == 0 {
		return bitset.New(0)
	}
	bs := bitset.New(uint(succ[len(succ)-1]) + 1)
	for _, v := range succ {
		bs.Set(uint(v))
	}
	return bs
}
