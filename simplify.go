// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"io"

	"github.com/vigna/webgraph/sortarc"
)

// Simplify produces the undirected, duplicate-free, self-loop-free
// version of seq: for every arc (src, dst) both (src, dst) and
// (dst, src) are pushed into the sorter, which then drops self-loops
// and collapses duplicates during the merge (spec §4.5, §8 invariant 5).
func Simplify(seq *SequentialGraph, batchSize int, tmpDir string) (*SequentialGraph, error) {
	sorter, err := sortarc.NewSorter(batchSize, tmpDir)
	if err != nil {
		return nil, err
	}
	for {
		id, succ, nextErr := seq.Nodes.Next()
		if nextErr == io.EOF {
			break
		}
		if nextErr != nil {
			return nil, nextErr
		}
		src := uint64(id)
		for _, dst := range succ {
			if pushErr := sorter.Push(sortarc.Arc{First: src, Second: dst}); pushErr != nil {
				return nil, pushErr
			}
			if pushErr := sorter.Push(sortarc.Arc{First: dst, Second: src}); pushErr != nil {
				return nil, pushErr
			}
		}
	}
	merger, err := sorter.Finish(true)
	if err != nil {
		return nil, err
	}
	return newGroupedGraph(merger, seq.NumNodes), nil
}
