// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bvcomp implements the BV-graph sequential codec: encoding and
// decoding one node's successor list against a window of recently seen
// lists using reference, block, interval, and residual phases, over the
// universal codes from internal/bitio.
package bvcomp

import "github.com/vigna/webgraph/internal/bitio"

// Flags holds the per-field code family choice and the three structural
// parameters that are fixed for the lifetime of a compressed file.
type Flags struct {
	Outdegrees bitio.CodeKind
	References bitio.CodeKind
	Blocks     bitio.CodeKind
	Intervals  bitio.CodeKind
	Residuals  bitio.CodeKind
	ZetaK      uint // only consulted for fields using bitio.Zeta

	Window            int // W: how many previous nodes a reference may point back to
	MaxRefCount       int // R: maximum chain length of reference indirections
	MinIntervalLength int // L: minimum run length to emit as an interval; 0 disables intervals
}

// DefaultFlags mirrors the reference CLI's defaults (see SPEC_FULL.md,
// "SUPPLEMENTED FEATURES" §3): γ for every field but residuals, which use
// ζ_3, a window of 7, a max reference chain of 3, and a minimum interval
// length of 4.
func DefaultFlags() Flags {
	return Flags{
		Outdegrees:        bitio.Gamma,
		References:        bitio.Gamma,
		Blocks:            bitio.Gamma,
		Intervals:         bitio.Gamma,
		Residuals:         bitio.Zeta,
		ZetaK:             3,
		Window:            7,
		MaxRefCount:       3,
		MinIntervalLength: 4,
	}
}

// intervalsEnabled reports whether interval coding is on; a
// min_interval_length of 0 disables it (spec §4.2's edge cases).
func (f Flags) intervalsEnabled() bool { return f.MinIntervalLength > 0 }

func (f Flags) referencesEnabled() bool { return f.Window > 0 && f.MaxRefCount > 0 }
