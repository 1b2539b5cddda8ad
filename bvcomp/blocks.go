// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvcomp

import "github.com/bits-and-blooms/bitset"

// interval describes one maximal run of consecutive integers in a
// node's extras list, of length >= MinIntervalLength.
type interval struct {
	start, length int
}

// blockRuns partitions refList into alternating copied/skipped runs
// against the membership set of the current node's successors. The
// first run is always a copy run (possibly of length zero, if refList
// actually starts with a skipped element); this fixes the decoding
// convention unambiguously. It returns the run lengths and the
// subsequence of refList that was marked copied (still ascending).
func blockRuns(refList []uint64, iSet *bitset.BitSet) (runs []int, copied []uint64) {
	if len(refList) == 0 {
		return []int{0}, nil
	}
	curType := true // copy
	curLen := 0
	for _, v := range refList {
		c := iSet.Test(uint(v))
		if c == curType {
			curLen++
		} else {
			runs = append(runs, curLen)
			curType = c
			curLen = 1
		}
		if c {
			copied = append(copied, v)
		}
	}
	runs = append(runs, curLen)
	return runs, copied
}

// replayBlockRuns reverses blockRuns given the stored run lengths:
// the first run copies, the second skips, and so on.
func replayBlockRuns(refList []uint64, runs []int) (copied []uint64) {
	pos := 0
	copying := true
	for _, n := range runs {
		if copying {
			copied = append(copied, refList[pos:pos+n]...)
		}
		pos += n
		copying = !copying
	}
	return copied
}

// sortedDiff returns the elements of a (ascending, distinct) not present
// in b (ascending, distinct, subset of a).
func sortedDiff(a, b []uint64) []uint64 {
	if len(b) == 0 {
		out := make([]uint64, len(a))
		copy(out, a)
		return out
	}
	out := make([]uint64, 0, len(a)-len(b))
	j := 0
	for _, v := range a {
		for j < len(b) && b[j] < v {
			j++
		}
		if j < len(b) && b[j] == v {
			j++
			continue
		}
		out = append(out, v)
	}
	return out
}

// extractIntervals pulls maximal runs of consecutive integers of length
// >= minLen out of extras (ascending, distinct), returning the intervals
// in ascending order and the remaining elements (the residuals).
func extractIntervals(extras []uint64, minLen int) (ivs []interval, residuals []uint64) {
	n := len(extras)
	i := 0
	for i < n {
		j := i + 1
		for j < n && extras[j] == extras[j-1]+1 {
			j++
		}
		runLen := j - i
		if runLen >= minLen {
			ivs = append(ivs, interval{start: int(extras[i]), length: runLen})
		} else {
			residuals = append(residuals, extras[i:j]...)
		}
		i = j
	}
	return ivs, residuals
}

// mergeSortedAppend produces the sorted union of three pairwise-disjoint
// ascending lists (copied positions, expanded intervals, residuals).
func mergeSortedAppend(copied []uint64, ivs []interval, residuals []uint64) []uint64 {
	total := len(copied) + len(residuals)
	for _, iv := range ivs {
		total += iv.length
	}
	out := make([]uint64, 0, total)

	var expanded []uint64
	for _, iv := range ivs {
		for k := 0; k < iv.length; k++ {
			expanded = append(expanded, uint64(iv.start+k))
		}
	}

	ci, ii, ri := 0, 0, 0
	for ci < len(copied) || ii < len(expanded) || ri < len(residuals) {
		var best uint64
		from := -1
		if ci < len(copied) {
			best, from = copied[ci], 0
		}
		if ii < len(expanded) && (from == -1 || expanded[ii] < best) {
			best, from = expanded[ii], 1
		}
		if ri < len(residuals) && (from == -1 || residuals[ri] < best) {
			best, from = residuals[ri], 2
		}
		out = append(out, best)
		switch from {
		case 0:
			ci++
		case 1:
			ii++
		case 2:
			ri++
		}
	}
	return out
}
