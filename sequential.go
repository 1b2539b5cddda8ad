// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/vigna/webgraph/bvcomp"
	"github.com/vigna/webgraph/internal/bitio"
	"github.com/vigna/webgraph/internal/errkit"
	"github.com/vigna/webgraph/offsets"
)

// seqLister adapts a bvcomp.SequentialDecoder, bounded to the declared
// node count, to the NodeLister interface.
type seqLister struct {
	dec       *bvcomp.SequentialDecoder
	remaining int64
}

func (l *seqLister) Next() (id int64, succ []uint64, err error) {
	if l.remaining <= 0 {
		return 0, nil, io.EOF
	}
	nid, s, err := l.dec.Next()
	if err != nil {
		return 0, nil, err
	}
	l.remaining--
	return int64(nid), s, nil
}

// LoadSeq opens the .graph and .properties files at basename and
// returns a streaming (node, successors) view that does not require an
// .offsets index, per spec §6.2.
func LoadSeq(basename string) (*SequentialGraph, error) {
	props, err := loadProperties(basename)
	if err != nil {
		return nil, err
	}
	path := basename + GraphExt
	f, err := os.Open(path)
	if err != nil {
		return nil, errkit.WithPath(errkit.IOFailure, path, err)
	}
	br := bitio.NewReader(bufio.NewReader(f), props.Order)
	dec := bvcomp.NewSequentialDecoder(br, props.Flags, 0)
	return &SequentialGraph{
		NumNodes: props.Nodes,
		NumArcs:  props.Arcs,
		Nodes:    &seqLister{dec: dec, remaining: props.Nodes},
		closer:   f.Close,
	}, nil
}

// CompressSequential encodes seq's nodes in order to <basename>.graph,
// optionally builds <basename>.offsets in lock-step, and writes
// <basename>.properties. It returns the total number of bits written
// to the graph stream, not counting the final byte-alignment padding.
//
// If seq.NumNodes is positive and the number of nodes actually produced
// by seq.Nodes differs, the mismatch is logged and the declared count
// wins for the properties file, per spec §7's NodeCountMismatch policy
// ("warn, continue").
func CompressSequential(basename string, seq *SequentialGraph, flags bvcomp.Flags, order bitio.Order, buildOffsets bool) (totalBits int64, err error) {
	graphPath := basename + GraphExt
	graphFile, err := os.Create(graphPath)
	if err != nil {
		return 0, errkit.WithPath(errkit.IOFailure, graphPath, err)
	}
	defer graphFile.Close()

	bw := bitio.NewWriter(graphFile, order)
	enc := bvcomp.NewEncoder(bw, flags, 0)

	var offFile *os.File
	var offWriter *offsets.Writer
	if buildOffsets {
		offPath := basename + OffsetsExt
		offFile, err = os.Create(offPath)
		if err != nil {
			return 0, errkit.WithPath(errkit.IOFailure, offPath, err)
		}
		defer offFile.Close()
		offWriter = offsets.NewWriter(bitio.NewWriter(offFile, order))
	}

	var n, pos int64
	for {
		_, succ, nextErr := seq.Nodes.Next()
		if nextErr == io.EOF {
			break
		}
		if nextErr != nil {
			return 0, nextErr
		}
		if offWriter != nil {
			if perr := offWriter.Put(pos); perr != nil {
				return 0, perr
			}
		}
		bits, perr := enc.Push(succ)
		if perr != nil {
			return 0, perr
		}
		pos += bits
		n++
	}

	totalBits, err = enc.Flush()
	if err != nil {
		return 0, errkit.WithPath(errkit.IOFailure, graphPath, err)
	}
	if offWriter != nil {
		if err := offWriter.Finish(totalBits); err != nil {
			return 0, err
		}
	}

	nodes := seq.NumNodes
	if nodes > 0 && n != nodes {
		log.Printf("webgraph: declared %d nodes but encoded %d; keeping declared count", nodes, n)
	} else {
		nodes = n
	}

	props := bvcomp.Properties{Nodes: nodes, Arcs: enc.Arcs, Flags: flags, Order: order}
	if err := saveProperties(basename, props); err != nil {
		return 0, err
	}
	return totalBits, nil
}
