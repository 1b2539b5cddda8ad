// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"io"
	"log"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/vigna/webgraph"
)

// erdosRenyiLister draws, for every node, an independent Bernoulli(p)
// trial against every other node id, the classical Erdős–Rényi
// construction. It is named but untested per spec §1's exclusion of
// random-graph generators from the core.
type erdosRenyiLister struct {
	r       *rand.Rand
	n, next int64
	p       float64
}

func (l *erdosRenyiLister) Next() (id int64, succ []uint64, err error) {
	if l.next >= l.n {
		return 0, nil, io.EOF
	}
	id = l.next
	l.next++
	for j := int64(0); j < l.n; j++ {
		if j != id && l.r.Float64() < l.p {
			succ = append(succ, uint64(j))
		}
	}
	return id, succ, nil
}

func newGenerateCmd() *cobra.Command {
	var numNodes int64
	var prob float64
	var seed int64
	cf := (*compressionFlags)(nil)

	cmd := &cobra.Command{
		Use:   "generate <basename>",
		Short: "Generate a random Erdős–Rényi graph and compress it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			basename := args[0]
			order, err := cf.order()
			if err != nil {
				return err
			}
			lister := &erdosRenyiLister{r: rand.New(rand.NewSource(seed)), n: numNodes, p: prob}
			seq := &webgraph.SequentialGraph{NumNodes: numNodes, Nodes: lister}
			log.Printf("generating G(%d, %.4f) into %s", numNodes, prob, basename)
			bits, err := webgraph.CompressSequential(basename, seq, cf.bvcompFlags(), order, true)
			if err != nil {
				return err
			}
			log.Printf("wrote %d bits to %s", bits, basename+webgraph.GraphExt)
			return nil
		},
	}
	cf = addCompressionFlags(cmd)
	cmd.Flags().Int64Var(&numNodes, "nodes", 1000, "number of nodes to generate")
	cmd.Flags().Float64Var(&prob, "prob", 0.01, "edge probability between any two nodes")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}
