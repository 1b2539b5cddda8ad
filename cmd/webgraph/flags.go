// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vigna/webgraph/bvcomp"
	"github.com/vigna/webgraph/internal/bitio"
)

// compressionFlags binds the one-flag-per-parameter defaults named in
// SPEC_FULL.md's supplemented features §3, taken from the reference
// CLI's own argument defaults.
type compressionFlags struct {
	window            int
	maxRefCount       int
	minIntervalLength int
	zetaK             int
	endianness        string
}

func addCompressionFlags(cmd *cobra.Command) *compressionFlags {
	f := &compressionFlags{}
	flags := cmd.Flags()
	flags.IntVar(&f.window, "window", 7, "compression window: how many previous nodes a reference may point back to")
	flags.IntVar(&f.maxRefCount, "max-ref-count", 3, "maximum chain length of reference indirections")
	flags.IntVar(&f.minIntervalLength, "min-interval-length", 4, "minimum run length to emit as an interval (0 disables intervals)")
	flags.IntVar(&f.zetaK, "zeta-k", 3, "block size for zeta codes used by the residuals field")
	flags.StringVar(&f.endianness, "endianness", "LITTLE", "bit order of the stream: BIG or LITTLE")
	return f
}

func (f *compressionFlags) bvcompFlags() bvcomp.Flags {
	return bvcomp.Flags{
		Outdegrees: bitio.Gamma,
		References: bitio.Gamma,
		Blocks:     bitio.Gamma,
		Intervals:  bitio.Gamma,
		Residuals:  bitio.Zeta,
		ZetaK:      uint(f.zetaK),

		Window:            f.window,
		MaxRefCount:       f.maxRefCount,
		MinIntervalLength: f.minIntervalLength,
	}
}

func (f *compressionFlags) order() (bitio.Order, error) {
	order, ok := bitio.ParseOrder(f.endianness)
	if !ok {
		return 0, fmt.Errorf("invalid --endianness %q: must be BIG or LITTLE", f.endianness)
	}
	return order, nil
}
