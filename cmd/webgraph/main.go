// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command webgraph is the external collaborator CLI front-end spec §6.3
// names but does not specify in depth: build-offsets, simplify,
// transpose, generate, stats, and compare subcommands over the
// webgraph library.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(log.Ltime)
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "webgraph",
		Short: "Compress, decompress, and transform BV-graph web graphs",
	}
	root.AddCommand(
		newBuildOffsetsCmd(),
		newSimplifyCmd(),
		newTransposeCmd(),
		newGenerateCmd(),
		newStatsCmd(),
		newCompareCmd(),
	)
	return root
}
