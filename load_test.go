// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vigna/webgraph/internal/bitio"
)

func TestLoadRandomAccessMatchesAdjacency(t *testing.T) {
	adjacency := [][]uint64{{1, 2, 3}, {2, 3}, {3}, {}}
	basename := filepath.Join(t.TempDir(), "g")
	flags := Flags4()

	seq := &SequentialGraph{NumNodes: int64(len(adjacency)), Nodes: NewSliceLister(adjacency, 0)}
	if _, err := CompressSequential(basename, seq, flags, bitio.LittleEndian, true); err != nil {
		t.Fatalf("CompressSequential: %v", err)
	}

	g, err := Load(basename)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer g.Close()

	if g.NumNodes() != 4 || g.NumArcs() != 6 {
		t.Fatalf("NumNodes/NumArcs = (%d, %d), want (4, 6)", g.NumNodes(), g.NumArcs())
	}
	for i, want := range normalizeAdj(adjacency) {
		got, err := g.Successors(int64(i))
		if err != nil {
			t.Fatalf("Successors(%d): %v", i, err)
		}
		if got == nil {
			got = []uint64{}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("node %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	if _, err := g.Successors(-1); err == nil {
		t.Fatal("expected error for out-of-range node")
	}
	if _, err := g.Successors(4); err == nil {
		t.Fatal("expected error for out-of-range node")
	}
}
