// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"io"

	"github.com/vigna/webgraph/sortarc"
)

// groupedLister turns a sortarc.Merger's flat, sorted (first, second)
// stream back into the lender shape spec §4.5 step 3 describes:
// successors for a node are the contiguous block of pairs sharing the
// same first. Node ids with no arcs still appear, with an empty
// successor list, because nextID advances unconditionally.
type groupedLister struct {
	merger   *sortarc.Merger
	numNodes int64
	nextID   int64
	pending  *sortarc.Arc
	exhaust  bool
}

func newGroupedGraph(merger *sortarc.Merger, numNodes int64) *SequentialGraph {
	gl := &groupedLister{merger: merger, numNodes: numNodes}
	return &SequentialGraph{
		NumNodes: numNodes,
		Nodes:    gl,
		closer:   gl.close,
	}
}

func (g *groupedLister) Next() (id int64, succ []uint64, err error) {
	if g.nextID >= g.numNodes {
		return 0, nil, io.EOF
	}
	id = g.nextID
	g.nextID++

	for {
		var a sortarc.Arc
		if g.pending != nil {
			a = *g.pending
		} else if !g.exhaust {
			next, nextErr := g.merger.Next()
			if nextErr == io.EOF {
				g.exhaust = true
				break
			}
			if nextErr != nil {
				return 0, nil, nextErr
			}
			a = next
		} else {
			break
		}
		if int64(a.First) != id {
			g.pending = &a
			break
		}
		g.pending = nil
		succ = append(succ, a.Second)
	}
	return id, succ, nil
}

func (g *groupedLister) close() error { return g.merger.Close() }
