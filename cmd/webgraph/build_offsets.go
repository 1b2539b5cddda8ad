// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/vigna/webgraph"
)

func newBuildOffsetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build-offsets <basename>",
		Short: "Build the .offsets random-access index for an existing .graph/.properties pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			basename := args[0]
			log.Printf("building offsets for %s", basename)
			return webgraph.BuildOffsets(basename)
		},
	}
}
