// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package offsets implements the random-access index over a compressed
// BV-graph bit stream: a γ-coded sequence of per-node bit-position
// deltas (spec §4.3), built in lock-step with encoding or decoding and
// loaded back as a flat slice of absolute positions for O(1) seeking.
package offsets

import (
	"github.com/vigna/webgraph/internal/bitio"
	"github.com/vigna/webgraph/internal/errkit"
)

// Writer accumulates γ(Δ_i) deltas as each node's start position is
// observed, mirroring the teacher's incremental-state writers.
type Writer struct {
	bw      *bitio.Writer
	prevPos int64
	n       int
}

// NewWriter constructs an offsets Writer over bw. pos_{-1} is 0 per
// spec §4.3.
func NewWriter(bw *bitio.Writer) *Writer {
	return &Writer{bw: bw}
}

// Put records the bit position at which node i's encoding began, for i
// in increasing order starting at 0. It writes γ(pos_i - pos_{i-1}).
func (w *Writer) Put(pos int64) (err error) {
	defer errkit.Recover(&err)
	delta := pos - w.prevPos
	if delta < 0 {
		errkit.Panic(errkit.Overflow, "offsets: non-increasing position %d after %d", pos, w.prevPos)
	}
	w.bw.WriteGamma(uint64(delta))
	w.prevPos = pos
	w.n++
	return nil
}

// Finish writes the terminal delta from the last recorded position to
// endOfStream, making offset N well-defined per spec §4.3, and flushes
// the underlying writer.
func (w *Writer) Finish(endOfStream int64) (err error) {
	defer errkit.Recover(&err)
	delta := endOfStream - w.prevPos
	if delta < 0 {
		errkit.Panic(errkit.Overflow, "offsets: end of stream %d precedes last position %d", endOfStream, w.prevPos)
	}
	w.bw.WriteGamma(uint64(delta))
	_, err = w.bw.Flush()
	return err
}

// N reports how many node positions have been recorded via Put (not
// counting the terminal delta from Finish).
func (w *Writer) N() int { return w.n }

// Load decodes the full offsets stream from br into a flat slice of N+1
// absolute bit positions: positions[i] is the start of node i's
// encoding for i < n, and positions[n] is the end-of-stream position.
// This realizes spec §4.3's "optionally loading them into a compact
// rank/select structure" at the scale this package targets; see
// DESIGN.md for why a succinct Elias-Fano index was not built instead.
func Load(br *bitio.Reader, n int) (positions []int64, err error) {
	defer errkit.Recover(&err)
	positions = make([]int64, n+1)
	var pos int64
	for i := 0; i <= n; i++ {
		pos += int64(br.ReadGamma())
		positions[i] = pos
	}
	return positions, nil
}

// Index is the loaded, queryable form of an offsets stream.
type Index struct {
	positions []int64
}

// NewIndex wraps a slice of N+1 absolute bit positions as produced by
// Load.
func NewIndex(positions []int64) *Index {
	return &Index{positions: positions}
}

// Len reports the number of nodes this index covers.
func (idx *Index) Len() int {
	if len(idx.positions) == 0 {
		return 0
	}
	return len(idx.positions) - 1
}

// BitPosition returns the starting bit position of node i's encoding.
// i == Len() is valid and returns the end-of-stream position.
func (idx *Index) BitPosition(i int) (int64, error) {
	if i < 0 || i >= len(idx.positions) {
		return 0, errkit.New(errkit.Truncated, "offsets: node %d out of range [0,%d)", i, len(idx.positions))
	}
	return idx.positions[i], nil
}

// BitLength returns the number of bits node i's encoding occupies.
func (idx *Index) BitLength(i int) (int64, error) {
	start, err := idx.BitPosition(i)
	if err != nil {
		return 0, err
	}
	end, err := idx.BitPosition(i + 1)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}
