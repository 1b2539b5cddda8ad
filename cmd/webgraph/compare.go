// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz"

	"github.com/vigna/webgraph"
)

// newCompareCmd sizes the BV-graph encoding against a generic
// general-purpose compressor (xz) over the same arcs serialized as raw
// (src, dst) pairs, the comparative role internal/tool/bench plays for
// the teacher's own codecs (SPEC_FULL.md §9).
func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <basename>",
		Short: "Compare .graph size against xz-compressed raw arc data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			basename := args[0]
			g, err := webgraph.Load(basename)
			if err != nil {
				return err
			}
			defer g.Close()

			xzSize, err := xzCompressedArcSize(g)
			if err != nil {
				return err
			}
			fi, err := os.Stat(basename + webgraph.GraphExt)
			if err != nil {
				return err
			}

			fmt.Printf("bvgraph bytes: %d\n", fi.Size())
			fmt.Printf("xz bytes:      %d\n", xzSize)
			if xzSize > 0 {
				fmt.Printf("ratio (xz/bv): %.3f\n", float64(xzSize)/float64(fi.Size()))
			}
			return nil
		},
	}
}

func xzCompressedArcSize(g *webgraph.RandomAccessGraph) (int64, error) {
	counter := &countingWriter{}
	xw, err := xz.NewWriter(counter)
	if err != nil {
		return 0, err
	}

	var hdr [16]byte
	for i := int64(0); i < g.NumNodes(); i++ {
		succ, err := g.Successors(i)
		if err != nil {
			return 0, err
		}
		for _, dst := range succ {
			binary.BigEndian.PutUint64(hdr[0:8], uint64(i))
			binary.BigEndian.PutUint64(hdr[8:16], dst)
			if _, err := xw.Write(hdr[:]); err != nil {
				return 0, err
			}
		}
	}
	if err := xw.Close(); err != nil {
		return 0, err
	}
	return counter.n, nil
}

type countingWriter struct{ n int64 }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}
