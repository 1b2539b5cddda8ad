// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvcomp

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vigna/webgraph/internal/bitio"
)

// encodeGraph writes adjacency sequentially with the given flags and
// returns the encoded bytes and the bit lengths consumed by each node.
func encodeGraph(t *testing.T, adjacency [][]uint64, flags Flags) ([]byte, []int64) {
	t.Helper()
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf, bitio.LittleEndian)
	enc := NewEncoder(bw, flags, 0)
	bits := make([]int64, len(adjacency))
	for i, succ := range adjacency {
		n, err := enc.Push(succ)
		if err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
		bits[i] = n
	}
	if _, err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return buf.Bytes(), bits
}

func decodeGraph(t *testing.T, data []byte, n int, flags Flags) [][]uint64 {
	t.Helper()
	br := bitio.NewReader(bytes.NewReader(data), bitio.LittleEndian)
	dec := NewSequentialDecoder(br, flags, 0)
	out := make([][]uint64, n)
	for i := 0; i < n; i++ {
		_, succ, err := dec.Next()
		if err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
		out[i] = succ
	}
	return out
}

func normalize(adjacency [][]uint64) [][]uint64 {
	out := make([][]uint64, len(adjacency))
	for i, s := range adjacency {
		if len(s) == 0 {
			out[i] = nil
			continue
		}
		out[i] = s
	}
	return out
}

func TestRoundTripSmallGraph(t *testing.T) {
	adjacency := [][]uint64{{1, 2, 3}, {2, 3}, {3}, {}}
	flags := Flags{
		Outdegrees: bitio.Gamma, References: bitio.Gamma, Blocks: bitio.Gamma,
		Intervals: bitio.Gamma, Residuals: bitio.Gamma,
		Window: 2, MaxRefCount: 3, MinIntervalLength: 2,
	}
	data, _ := encodeGraph(t, adjacency, flags)
	got := decodeGraph(t, data, len(adjacency), flags)
	if diff := cmp.Diff(normalize(adjacency), got); diff != "" {
		t.Errorf("adjacency mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripWindowZero(t *testing.T) {
	adjacency := [][]uint64{{1, 2, 3}, {2, 3}, {3}, {}}
	flags := Flags{
		Outdegrees: bitio.Gamma, References: bitio.Gamma, Blocks: bitio.Gamma,
		Intervals: bitio.Gamma, Residuals: bitio.Gamma,
		Window: 0, MaxRefCount: 3, MinIntervalLength: 2,
	}
	if flags.referencesEnabled() {
		t.Fatal("expected references disabled when Window == 0")
	}
	data, _ := encodeGraph(t, adjacency, flags)
	got := decodeGraph(t, data, len(adjacency), flags)
	if diff := cmp.Diff(normalize(adjacency), got); diff != "" {
		t.Errorf("adjacency mismatch (-want +got):\n%s", diff)
	}

	flagsW2 := flags
	flagsW2.Window = 2
	data2, _ := encodeGraph(t, adjacency, flagsW2)
	got2 := decodeGraph(t, data2, len(adjacency), flagsW2)
	if diff := cmp.Diff(normalize(adjacency), got2); diff != "" {
		t.Errorf("W=2 adjacency mismatch (-want +got):\n%s", diff)
	}
}

func TestSingleIntervalExactlyOne(t *testing.T) {
	adjacency := [][]uint64{{0, 1, 2, 3, 4}}
	flags := Flags{
		Outdegrees: bitio.Gamma, References: bitio.Gamma, Blocks: bitio.Gamma,
		Intervals: bitio.Gamma, Residuals: bitio.Gamma,
		Window: 0, MaxRefCount: 0, MinIntervalLength: 2,
	}
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf, bitio.LittleEndian)
	enc := NewEncoder(bw, flags, 0)
	if _, err := enc.Push(adjacency[0]); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if _, err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	sorted := sortUnique(adjacency[0])
	ivs, residuals := extractIntervals(sorted, flags.MinIntervalLength)
	if len(ivs) != 1 || ivs[0].start != 0 || ivs[0].length != 5 {
		t.Fatalf("expected one interval (0,5), got %+v", ivs)
	}
	if len(residuals) != 0 {
		t.Fatalf("expected zero residuals, got %v", residuals)
	}

	got := decodeGraph(t, buf.Bytes(), 1, flags)
	if diff := cmp.Diff(adjacency, got); diff != "" {
		t.Errorf("adjacency mismatch (-want +got):\n%s", diff)
	}
}

func TestIntervalsDisabledWhenMinLengthZero(t *testing.T) {
	adjacency := [][]uint64{{0, 1, 2, 3, 4}}
	flags := Flags{
		Outdegrees: bitio.Gamma, References: bitio.Gamma, Blocks: bitio.Gamma,
		Intervals: bitio.Gamma, Residuals: bitio.Gamma,
		Window: 0, MaxRefCount: 0, MinIntervalLength: 0,
	}
	if flags.intervalsEnabled() {
		t.Fatal("expected intervals disabled when MinIntervalLength == 0")
	}
	data, _ := encodeGraph(t, adjacency, flags)
	got := decodeGraph(t, data, 1, flags)
	if diff := cmp.Diff(adjacency, got); diff != "" {
		t.Errorf("adjacency mismatch (-want +got):\n%s", diff)
	}
}

func TestZeroOutdegreeNodeConsumesNoFurtherBits(t *testing.T) {
	adjacency := [][]uint64{{}, {0}}
	flags := DefaultFlags()
	_, bits := encodeGraph(t, adjacency, flags)
	if bits[0] != 1 {
		t.Fatalf("node 0 used %d bits, want 1 (only the γ(0) outdegree codeword)", bits[0])
	}
	data, _ := encodeGraph(t, adjacency, flags)
	got := decodeGraph(t, data, len(adjacency), flags)
	if diff := cmp.Diff(normalize(adjacency), got); diff != "" {
		t.Errorf("adjacency mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripBigEndian(t *testing.T) {
	adjacency := [][]uint64{{1, 2, 3}, {2, 3}, {3}, {}}
	flags := DefaultFlags()
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf, bitio.BigEndian)
	enc := NewEncoder(bw, flags, 0)
	for _, succ := range adjacency {
		if _, err := enc.Push(succ); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	if _, err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	br := bitio.NewReader(bytes.NewReader(buf.Bytes()), bitio.BigEndian)
	dec := NewSequentialDecoder(br, flags, 0)
	got := make([][]uint64, len(adjacency))
	for i := range adjacency {
		_, succ, err := dec.Next()
		if err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
		got[i] = succ
	}
	if diff := cmp.Diff(normalize(adjacency), got); diff != "" {
		t.Errorf("adjacency mismatch (-want +got):\n%s", diff)
	}
}

func TestRandomAccessDecodeMatchesSequential(t *testing.T) {
	adjacency := [][]uint64{{1, 2, 3}, {2, 3}, {3}, {}, {0, 1}}
	flags := Flags{
		Outdegrees: bitio.Gamma, References: bitio.Gamma, Blocks: bitio.Gamma,
		Intervals: bitio.Gamma, Residuals: bitio.Gamma,
		Window: 3, MaxRefCount: 3, MinIntervalLength: 2,
	}
	data, bitsPerNode := encodeGraph(t, adjacency, flags)

	offsets := make([]int64, len(adjacency))
	var pos int64
	for i, n := range bitsPerNode {
		offsets[i] = pos
		pos += n
	}

	seek := func(id int) *bitio.Reader {
		br := bitio.NewReader(bytes.NewReader(data), bitio.LittleEndian)
		br.SkipBits(uint(offsets[id]))
		return br
	}

	for i := range adjacency {
		got, err := DecodeRandom(flags, i, seek)
		if err != nil {
			t.Fatalf("DecodeRandom(%d): %v", i, err)
		}
		want := normalize(adjacency)[i]
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("node %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestBlockRunsRoundTrip(t *testing.T) {
	ref := []uint64{1, 2, 3, 4, 5, 6}
	keep := map[uint64]bool{2: true, 3: true, 6: true}
	bs := successorSet([]uint64{2, 3, 6})
	runs, copied := blockRuns(ref, bs)
	replayed := replayBlockRuns(ref, runs)
	if diff := cmp.Diff(copied, replayed); diff != "" {
		t.Errorf("replay mismatch (-want +got):\n%s", diff)
	}
	for _, v := range copied {
		if !keep[v] {
			t.Errorf("copied unexpected value %d", v)
		}
	}
}

func TestSortedDiff(t *testing.T) {
	a := []uint64{1, 2, 3, 4, 5}
	b := []uint64{2, 4}
	got := sortedDiff(a, b)
	want := []uint64{1, 3, 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sortedDiff mismatch (-want +got):\n%s", diff)
	}
}

func TestSortUniqueDedupesAndSorts(t *testing.T) {
	got := sortUnique([]uint64{3, 1, 2, 1, 3})
	want := []uint64{1, 2, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sortUnique mismatch (-want +got):\n%s", diff)
	}
}
