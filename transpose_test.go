// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTransposeSmallGraph(t *testing.T) {
	adjacency := [][]uint64{{1}, {2}, {0}}
	seq := &SequentialGraph{NumNodes: 3, Nodes: NewSliceLister(adjacency, 0)}
	out, err := Transpose(seq, 2, t.TempDir())
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	defer out.Close()

	got := readAll(t, out)
	want := [][]uint64{{2}, {0}, {1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transpose mismatch (-want +got):\n%s", diff)
	}
}

func TestTransposeTwiceReturnsOriginal(t *testing.T) {
	adjacency := randomGraph(200, 3)
	seq := &SequentialGraph{NumNodes: int64(len(adjacency)), Nodes: NewSliceLister(adjacency, 0)}

	once, err := Transpose(seq, 16, t.TempDir())
	if err != nil {
		t.Fatalf("Transpose (1): %v", err)
	}
	defer once.Close()

	twice, err := Transpose(once, 16, t.TempDir())
	if err != nil {
		t.Fatalf("Transpose (2): %v", err)
	}
	defer twice.Close()

	got := readAll(t, twice)
	want := normalizeAdj(adjacency)
	if diff := cmp.Diff(arcSet(want), arcSet(got)); diff != "" {
		t.Errorf("double transpose arc set mismatch (-want +got):\n%s", diff)
	}
}

func TestSimplifySmallGraph(t *testing.T) {
	adjacency := [][]uint64{{0, 1, 1}, {0}}
	seq := &SequentialGraph{NumNodes: 2, Nodes: NewSliceLister(adjacency, 0)}
	out, err := Simplify(seq, 4, t.TempDir())
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	defer out.Close()

	got := readAll(t, out)
	want := [][]uint64{{1}, {0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("simplify mismatch (-want +got):\n%s", diff)
	}
}

func TestSimplifyOutputIsStrictlyIncreasingAndSelfLoopFree(t *testing.T) {
	adjacency := randomGraph(300, 4)
	seq := &SequentialGraph{NumNodes: int64(len(adjacency)), Nodes: NewSliceLister(adjacency, 0)}
	out, err := Simplify(seq, 32, t.TempDir())
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	defer out.Close()

	for i, succ := range readAll(t, out) {
		for k, v := range succ {
			if v == uint64(i) {
				t.Errorf("node %d: self-loop survived simplify", i)
			}
			if k > 0 && succ[k-1] >= v {
				t.Errorf("node %d: successors not strictly increasing: %v", i, succ)
			}
		}
	}
}

// arcSet flattens an adjacency list into a set of (src, dst) pairs for
// order-independent comparison.
func arcSet(adjacency [][]uint64) map[Arc]bool {
	out := map[Arc]bool{}
	for i, succ := range adjacency {
		for _, v := range succ {
			out[Arc{Src: uint64(i), Dst: v}] = true
		}
	}
	return out
}
