// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sortarc implements the disk-backed external sorter that
// powers transpose and simplify (spec §4.5): arcs are buffered, spilled
// to temporary files in sorted batches once the buffer fills, then
// merged back in (first, second) order with a k-way heap merge, the
// same reassembly shape pbzip2's parallel decompressor uses to
// reorder completed blocks (see DESIGN.md).
package sortarc

import (
	"bufio"
	"container/heap"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/vigna/webgraph/internal/errkit"
)

// Arc is one (first, second) pair in the external sort's key space;
// for transpose this is (dst, src), for simplify's scatter phase it is
// whichever orientation the caller pushes.
type Arc struct {
	First, Second uint64
}

func less(a, b Arc) bool {
	if a.First != b.First {
		return a.First < b.First
	}
	return a.Second < b.Second
}

// arcSlice adapts []Arc to sort.Interface for the in-memory batch sort.
// A third-party sort is not warranted here: the corpus's sort-adjacent
// dependencies are all compression codecs, not comparison sorters, so
// this stays on sort.Sort per DESIGN.md's justification for this one
// standard-library leaf.
type arcSlice []Arc

func (s arcSlice) Len() int           { return len(s) }
func (s arcSlice) Less(i, j int) bool { return less(s[i], s[j]) }
func (s arcSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Sorter buffers arcs in memory up to BatchSize, spilling each full
// batch to a sorted run file under TmpDir.
type Sorter struct {
	batchSize int
	tmpDir    string
	buf       []Arc
	runPaths  []string
	nextRun   int
}

// NewSorter constructs a Sorter that spills batches of batchSize arcs
// to files under tmpDir, creating tmpDir if needed.
func NewSorter(batchSize int, tmpDir string) (*Sorter, error) {
	if batchSize <= 0 {
		batchSize = 1 << 20
	}
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, errkit.WithPath(errkit.IOFailure, tmpDir, err)
	}
	return &Sorter{
		batchSize: batchSize,
		tmpDir:    tmpDir,
		buf:       make([]Arc, 0, batchSize),
	}, nil
}

// Push buffers one arc, spilling the batch to disk once it reaches
// BatchSize.
func (s *Sorter) Push(a Arc) error {
	s.buf = append(s.buf, a)
	if len(s.buf) >= s.batchSize {
		return s.spill()
	}
	return nil
}

func (s *Sorter) spill() error {
	if len(s.buf) == 0 {
		return nil
	}
	sort.Sort(arcSlice(s.buf))
	path := filepath.Join(s.tmpDir, fmt.Sprintf("run-%08d.arcs", s.nextRun))
	s.nextRun++

	f, err := os.Create(path)
	if err != nil {
		return errkit.WithPath(errkit.IOFailure, path, err)
	}
	w := bufio.NewWriter(f)
	var hdr [16]byte
	for _, a := range s.buf {
		binary.BigEndian.PutUint64(hdr[0:8], a.First)
		binary.BigEndian.PutUint64(hdr[8:16], a.Second)
		if _, err := w.Write(hdr[:]); err != nil {
			f.Close()
			return errkit.WithPath(errkit.IOFailure, path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errkit.WithPath(errkit.IOFailure, path, err)
	}
	if err := f.Close(); err != nil {
		return errkit.WithPath(errkit.IOFailure, path, err)
	}
	s.runPaths = append(s.runPaths, path)
	s.buf = s.buf[:0]
	return nil
}

// Finish spills any remaining buffered arcs and returns a Merger over
// all spilled runs in (first, second) order. simplify, when true, drops
// self-referencing pairs (First == Second) and collapses duplicate
// consecutive pairs to one, per spec §4.5 step 3.
func (s *Sorter) Finish(simplify bool) (*Merger, error) {
	if err := s.spill(); err != nil {
		return nil, err
	}
	return newMerger(s.runPaths, simplify)
}

// runReader streams one sorted run file back, one Arc at a time.
type runReader struct {
	f   *os.File
	r   *bufio.Reader
	cur Arc
	ok  bool
}

func openRun(path string) (*runReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errkit.WithPath(errkit.IOFailure, path, err)
	}
	rr := &runReader{f: f, r: bufio.NewReader(f)}
	if err := rr.advance(); err != nil {
		f.Close()
		return nil, err
	}
	return rr, nil
}

func (rr *runReader) advance() error {
	var hdr [16]byte
	_, err := io.ReadFull(rr.r, hdr[:])
	if err == io.EOF {
		rr.ok = false
		return nil
	}
	if err != nil {
		return errkit.WithPath(errkit.IOFailure, rr.f.Name(), err)
	}
	rr.cur = Arc{
		First:  binary.BigEndian.Uint64(hdr[0:8]),
		Second: binary.BigEndian.Uint64(hdr[8:16]),
	}
	rr.ok = true
	return nil
}

// runHeap orders runReaders by their current arc, the k-way merge
// frontier, mirroring cosnicolaou/pbzip2's blockHeap reassembly by
// sequence order (see DESIGN.md).
type runHeap []*runReader

func (h runHeap) Len() int            { return len(h) }
func (h runHeap) Less(i, j int) bool  { return less(h[i].cur, h[j].cur) }
func (h runHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *runHeap) Push(x interface{}) { *h = append(*h, x.(*runReader)) }
func (h *runHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Merger produces the globally sorted, optionally simplified, arc
// stream over every run a Sorter spilled.
type Merger struct {
	heap     runHeap
	runPaths []string
	simplify bool
	hasLast  bool
	last     Arc
	closed   bool
}

func newMerger(runPaths []string, simplify bool) (m *Merger, err error) {
	m = &Merger{runPaths: runPaths, simplify: simplify}
	defer func() {
		if err != nil {
			m.Close()
		}
	}()
	for _, path := range runPaths {
		rr, openErr := openRun(path)
		if openErr != nil {
			return nil, openErr
		}
		if rr.ok {
			m.heap = append(m.heap, rr)
		} else {
			rr.f.Close()
		}
	}
	heap.Init(&m.heap)
	return m, nil
}

// Next returns the next arc in (first, second) order, or io.EOF once
// every run is exhausted. When simplify is set, self-loops (First ==
// Second) are dropped and runs of equal consecutive pairs collapse to
// one, per spec §4.5.
func (m *Merger) Next() (Arc, error) {
	for {
		a, err := m.next()
		if err != nil {
			return Arc{}, err
		}
		if m.simplify {
			if a.First == a.Second {
				continue
			}
			if m.hasLast && m.last == a {
				continue
			}
			m.last, m.hasLast = a, true
		}
		return a, nil
	}
}

func (m *Merger) next() (Arc, error) {
	if len(m.heap) == 0 {
		return Arc{}, io.EOF
	}
	top := m.heap[0]
	a := top.cur
	if err := top.advance(); err != nil {
		return Arc{}, err
	}
	if top.ok {
		heap.Fix(&m.heap, 0)
	} else {
		heap.Pop(&m.heap)
		top.f.Close()
	}
	return a, nil
}

// Close removes every temporary run file and any still-open handles.
func (m *Merger) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	for _, rr := range m.heap {
		rr.f.Close()
	}
	var firstErr error
	for _, path := range m.runPaths {
		if err := os.Remove(path); err != nil && firstErr == nil {
			firstErr = errkit.WithPath(errkit.IOFailure, path, err)
		}
	}
	return firstErr
}
