// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vigna/webgraph/bvcomp"
	"github.com/vigna/webgraph/internal/bitio"
	"github.com/vigna/webgraph/internal/errkit"
	"github.com/vigna/webgraph/offsets"
)

// chunkResult is the completion signal a worker reports back, per
// spec §4.4 ("(k, bits, arcs)").
type chunkResult struct {
	bits, arcs int64
	tmpPath    string
}

// CompressParallel splits chunks across a pool of threads workers, each
// writing its own temporary bit-stream file under tmpDir, then
// concatenates them bit-exact (not byte-aligned) into <basename>.graph
// in ascending chunk order and writes <basename>.properties. Random
// access offsets are not built here; call BuildOffsets separately, as
// the build-offsets CLI subcommand does.
//
// Because intra-chunk reference windows never cross chunk boundaries
// (each chunk's Encoder is constructed with FirstNodeID = chunk.Start,
// forcing the chunk's first node to carry no reference), the resulting
// file decodes identically to a single-threaded compression with the
// same flags, modulo the first W nodes of each chunk losing reference
// compression (spec §4.4, §8 invariant 4).
func CompressParallel(basename string, chunks []Chunk, numNodes int64, flags bvcomp.Flags, order bitio.Order, threads int, tmpDir string) (totalBits int64, err error) {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return 0, errkit.WithPath(errkit.IOFailure, tmpDir, err)
	}

	results := make([]chunkResult, len(chunks))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(threads)

	for k, chunk := range chunks {
		k, chunk := k, chunk
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errkit.New(errkit.WorkerPanic, "webgraph: chunk %d worker panicked: %v", k, r)
				}
			}()
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, workErr := compressChunk(k, chunk, flags, order, tmpDir)
			if workErr != nil {
				return workErr
			}
			results[k] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		removeAll(results)
		return 0, err
	}

	totalBits, totalArcs, err := concatChunks(basename, results, order)
	removeAll(results)
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return 0, errkit.WithPath(errkit.IOFailure, tmpDir, err)
	}

	props := bvcomp.Properties{Nodes: numNodes, Arcs: totalArcs, Flags: flags, Order: order}
	if err := saveProperties(basename, props); err != nil {
		return 0, err
	}
	return totalBits, nil
}

// hexThreadID renders k as the 16-hex-digit temporary filename prefix
// spec §4.4 names.
func hexThreadID(k int) string { return fmt.Sprintf("%016x", k) }

func compressChunk(k int, chunk Chunk, flags bvcomp.Flags, order bitio.Order, tmpDir string) (res chunkResult, err error) {
	defer errkit.Recover(&err)

	path := filepath.Join(tmpDir, hexThreadID(k)+".bitstream")
	f, openErr := os.Create(path)
	if openErr != nil {
		errkit.PanicErr(errkit.IOFailure, openErr)
	}
	defer f.Close()

	bw := bitio.NewWriter(f, order)
	enc := bvcomp.NewEncoder(bw, flags, int(chunk.Start))
	for {
		_, succ, nextErr := chunk.Nodes.Next()
		if nextErr == io.EOF {
			break
		}
		if nextErr != nil {
			errkit.PanicErr(errkit.IOFailure, nextErr)
		}
		if _, pushErr := enc.Push(succ); pushErr != nil {
			panic(pushErr)
		}
	}
	bits, flushErr := enc.Flush()
	if flushErr != nil {
		errkit.PanicErr(errkit.IOFailure, flushErr)
	}
	return chunkResult{bits: bits, arcs: enc.Arcs, tmpPath: path}, nil
}

// copyChunkBits bits-per-step bound the scratch register without
// depending on bitio's internal chunk width.
const copyChunkBits = 32

// concatChunks performs the bit-exact copy of spec §4.4 step 3: each
// temporary stream is read back and its first bits_k bits (the content
// written before Flush's byte-alignment padding) are appended to the
// final writer, which never re-aligns between chunks.
func concatChunks(basename string, results []chunkResult, order bitio.Order) (totalBits, totalArcs int64, err error) {
	defer errkit.Recover(&err)

	graphPath := basename + GraphExt
	out, createErr := os.Create(graphPath)
	if createErr != nil {
		errkit.PanicErr(errkit.IOFailure, createErr)
	}
	defer out.Close()
	bw := bitio.NewWriter(out, order)

	for _, res := range results {
		in, openErr := os.Open(res.tmpPath)
		if openErr != nil {
			errkit.PanicErr(errkit.IOFailure, openErr)
		}
		br := bitio.NewReader(bufio.NewReader(in), order)
		remaining := res.bits
		for remaining > 0 {
			nb := uint(copyChunkBits)
			if remaining < copyChunkBits {
				nb = uint(remaining)
			}
			bw.WriteBits(br.ReadBits(nb), nb)
			remaining -= int64(nb)
		}
		in.Close()
		totalArcs += res.arcs
	}

	totalBits, flushErr := bw.Flush()
	if flushErr != nil {
		errkit.PanicErr(errkit.IOFailure, flushErr)
	}
	return totalBits, totalArcs, nil
}

func removeAll(results []chunkResult) {
	for _, res := range results {
		if res.tmpPath != "" {
			os.Remove(res.tmpPath)
		}
	}
}

// BuildOffsets decodes <basename>.graph sequentially and writes
// <basename>.offsets, the random-access index CompressParallel itself
// does not produce. This is the library counterpart of the
// build-offsets CLI subcommand (spec §6.3).
func BuildOffsets(basename string) (err error) {
	defer errkit.Recover(&err)

	props, propsErr := loadProperties(basename)
	if propsErr != nil {
		return propsErr
	}

	graphPath := basename + GraphExt
	graphFile, openErr := os.Open(graphPath)
	if openErr != nil {
		errkit.PanicErr(errkit.IOFailure, openErr)
	}
	defer graphFile.Close()

	offPath := basename + OffsetsExt
	offFile, createErr := os.Create(offPath)
	if createErr != nil {
		errkit.PanicErr(errkit.IOFailure, createErr)
	}
	defer offFile.Close()

	br := bitio.NewReader(bufio.NewReader(graphFile), props.Order)
	dec := bvcomp.NewSequentialDecoder(br, props.Flags, 0)
	ow := offsets.NewWriter(bitio.NewWriter(offFile, props.Order))

	for n := int64(0); n < props.Nodes; n++ {
		pos := br.BitPos()
		if putErr := ow.Put(pos); putErr != nil {
			return putErr
		}
		if _, _, nextErr := dec.Next(); nextErr != nil {
			return nextErr
		}
	}
	return ow.Finish(br.BitPos())
}
