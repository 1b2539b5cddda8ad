// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vigna/webgraph"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <basename>",
		Short: "Print node/arc counts and bits-per-arc for a compressed graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			basename := args[0]
			g, err := webgraph.Load(basename)
			if err != nil {
				return err
			}
			defer g.Close()

			fi, err := os.Stat(basename + webgraph.GraphExt)
			if err != nil {
				return err
			}
			bits := fi.Size() * 8
			var bitsPerArc float64
			if g.NumArcs() > 0 {
				bitsPerArc = float64(bits) / float64(g.NumArcs())
			}
			fmt.Printf("nodes:       %d\n", g.NumNodes())
			fmt.Printf("arcs:        %d\n", g.NumArcs())
			fmt.Printf("graph bytes: %d\n", fi.Size())
			fmt.Printf("bits/arc:    %.3f\n", bitsPerArc)
			return nil
		},
	}
}
