// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"io"

	"github.com/vigna/webgraph/sortarc"
)

// Transpose produces the transpose of seq: every arc (src, dst) becomes
// (dst, src), sorted and re-grouped by destination. batchSize bounds
// the external sorter's in-memory buffer; tmpDir holds its spilled
// runs, removed as part of the returned graph's Close.
func Transpose(seq *SequentialGraph, batchSize int, tmpDir string) (*SequentialGraph, error) {
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
		for _, dst := range succ {
			if pushErr := sorter.Push(sortarc.Arc{First: dst, Second: uint64(id)}); pushErr != nil {
				return nil, pushErr
			}
		}
	}
	merger, err := sorter.Finish(false)
	if err != nil {
		return nil, err
	}
	return newGroupedGraph(merger, seq.NumNodes), nil
}
