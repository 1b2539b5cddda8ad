// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"bufio"
	"bytes"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/vigna/webgraph/bvcomp"
	"github.com/vigna/webgraph/internal/bitio"
	"github.com/vigna/webgraph/internal/errkit"
	"github.com/vigna/webgraph/offsets"
)

// RandomAccessGraph answers successors(i) in O(1) by mmapping
// <basename>.graph and keeping the decoded <basename>.offsets index in
// memory, per spec §6.2.
type RandomAccessGraph struct {
	file     *os.File
	data     mmap.MMap
	idx      *offsets.Index
	flags    bvcomp.Flags
	order    bitio.Order
	numNodes int64
	numArcs  int64
}

// Load mmaps <basename>.graph and loads <basename>.offsets, returning a
// graph that answers random-access successor queries.
func Load(basename string) (*RandomAccessGraph, error) {
	props, err := loadProperties(basename)
	if err != nil {
		return nil, err
	}

	graphPath := basename + GraphExt
	f, err := os.Open(graphPath)
	if err != nil {
		return nil, errkit.WithPath(errkit.IOFailure, graphPath, err)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errkit.WithPath(errkit.IOFailure, graphPath, err)
	}

	offPath := basename + OffsetsExt
	offFile, err := os.Open(offPath)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, errkit.WithPath(errkit.IOFailure, offPath, err)
	}
	defer offFile.Close()
	obr := bitio.NewReader(bufio.NewReader(offFile), props.Order)
	positions, err := offsets.Load(obr, int(props.Nodes))
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, errkit.WithPath(errkit.PropertyParse, offPath, err)
	}

	return &RandomAccessGraph{
		file:     f,
		data:     data,
		idx:      offsets.NewIndex(positions),
		flags:    props.Flags,
		order:    props.Order,
		numNodes: props.Nodes,
		numArcs:  props.Arcs,
	}, nil
}

// NumNodes reports the declared node count.
func (g *RandomAccessGraph) NumNodes() int64 { return g.numNodes }

// NumArcs reports the declared arc count.
func (g *RandomAccessGraph) NumArcs() int64 { return g.numArcs }

// Successors decodes and returns node i's successor list, following
// reference chains as needed.
func (g *RandomAccessGraph) Successors(i int64) ([]uint64, error) {
	if i < 0 || i >= g.numNodes {
		return nil, errkit.New(errkit.Truncated, "webgraph: node %d out of range [0,%d)", i, g.numNodes)
	}
	seek := func(id int) *bitio.Reader {
		pos, err := g.idx.BitPosition(id)
		if err != nil {
			errkit.PanicErr(errkit.Truncated, err)
		}
		br := bitio.NewReader(bytes.NewReader(g.data[pos/8:]), g.order)
		br.SkipBits(uint(pos % 8))
		return br
	}
	return bvcomp.DecodeRandom(g.flags, int(i), seek)
}

// Close releases the mmap and the underlying file handle.
func (g *RandomAccessGraph) Close() error {
	if err := g.data.Unmap(); err != nil {
		return errkit.WithPath(errkit.IOFailure, g.file.Name(), err)
	}
	return g.file.Close()
}
