// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/vigna/webgraph"
)

func newTransposeCmd() *cobra.Command {
	var batchSize int
	var tmpDir string
	cf := (*compressionFlags)(nil)

	cmd := &cobra.Command{
		Use:   "transpose <basename> <output-basename>",
		Short: "Write the transpose of a graph to a new basename",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(args[0], args[1], batchSize, tmpDir, cf, webgraph.Transpose)
		},
	}
	cf = addCompressionFlags(cmd)
	cmd.Flags().IntVar(&batchSize, "batch-size", 1<<20, "number of arcs buffered in memory per sorted run")
	cmd.Flags().StringVar(&tmpDir, "temp-dir", "", "directory for spilled sort runs (defaults to <output-basename>.sort-tmp)")
	return cmd
}

func newSimplifyCmd() *cobra.Command {
	var batchSize int
	var tmpDir string
	cf := (*compressionFlags)(nil)

	cmd := &cobra.Command{
		Use:   "simplify <basename> <output-basename>",
		Short: "Write the undirected, duplicate-free, self-loop-free version of a graph to a new basename",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(args[0], args[1], batchSize, tmpDir, cf, webgraph.Simplify)
		},
	}
	cf = addCompressionFlags(cmd)
	cmd.Flags().IntVar(&batchSize, "batch-size", 1<<20, "number of arcs buffered in memory per sorted run")
	cmd.Flags().StringVar(&tmpDir, "temp-dir", "", "directory for spilled sort runs (defaults to <output-basename>.sort-tmp)")
	return cmd
}

// sortTransform is the shape both Transpose and Simplify share.
type sortTransform func(seq *webgraph.SequentialGraph, batchSize int, tmpDir string) (*webgraph.SequentialGraph, error)

func runSort(inBasename, outBasename string, batchSize int, tmpDir string, cf *compressionFlags, transform sortTransform) error {
	if tmpDir == "" {
		tmpDir = outBasename + ".sort-tmp"
	}
	order, err := cf.order()
	if err != nil {
		return err
	}

	in, err := webgraph.LoadSeq(inBasename)
	if err != nil {
		return err
	}
	defer in.Close()

	log.Printf("sorting arcs for %s into %s", inBasename, outBasename)
	out, err := transform(in, batchSize, tmpDir)
	if err != nil {
		return err
	}
	defer out.Close()

	bits, err := webgraph.CompressSequential(outBasename, out, cf.bvcompFlags(), order, true)
	if err != nil {
		return err
	}
	log.Printf("wrote %d bits to %s", bits, outBasename+webgraph.GraphExt)
	return nil
}
