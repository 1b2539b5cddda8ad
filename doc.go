// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package webgraph implements the BV-graph compression scheme for very
// large directed graphs: a variable-length bit-stream encoding that
// exploits similarity between nearby successor lists, runs of
// consecutive destinations, and universal integer codes tuned to the
// observed gap distribution.
//
// The bit codec and sequential node codec live in internal/bitio and
// bvcomp; this package wires them into the on-disk three-file format
// (.graph, .offsets, .properties), a parallel multi-chunk compressor,
// and the external-memory transpose/simplify pipeline.
package webgraph

const (
	// GraphExt is the bit-stream file extension.
	GraphExt = ".graph"
	// OffsetsExt is the random-access index file extension.
	OffsetsExt = ".offsets"
	// PropertiesExt is the Java-properties sidecar file extension.
	PropertiesExt = ".properties"
)
