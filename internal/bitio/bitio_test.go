// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTripValues(t *testing.T, order Order, write func(*Writer, uint64), read func(*Reader) uint64, vals []uint64) {
	t.Helper()
	var buf bytes.Buffer
	bw := NewWriter(&buf, order)
	for _, v := range vals {
		write(bw, v)
	}
	if _, err := bw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	br := NewReader(bytes.NewReader(buf.Bytes()), order)
	for i, want := range vals {
		got := read(br)
		if got != want {
			t.Fatalf("value %d: got %d, want %d", i, got, want)
		}
	}
}

func testValues(n int, max uint64) []uint64 {
	rnd := rand.New(rand.NewSource(1))
	vals := make([]uint64, n)
	for i := range vals {
		vals[i] = uint64(rnd.Int63()) % (max + 1)
	}
	return vals
}

func TestGammaRoundTrip(t *testing.T) {
	vals := append([]uint64{0, 1, 2, 3, 7, 8, 255, 256, 1 << 20}, testValues(2000, 1<<32)...)
	for _, order := range []Order{LittleEndian, BigEndian} {
		roundTripValues(t, order, (*Writer).WriteGamma, (*Reader).ReadGamma, vals)
	}
}

func TestDeltaRoundTrip(t *testing.T) {
	vals := append([]uint64{0, 1, 2, 3, 7, 8, 255, 256, 1 << 20}, testValues(2000, 1<<32)...)
	for _, order := range []Order{LittleEndian, BigEndian} {
		roundTripValues(t, order, (*Writer).WriteDelta, (*Reader).ReadDelta, vals)
	}
}

func TestZetaRoundTrip(t *testing.T) {
	vals := append([]uint64{0, 1, 2, 3, 7, 8, 255, 256, 1 << 20}, testValues(2000, 1<<32)...)
	for _, k := range []uint{1, 2, 3, 4, 7} {
		for _, order := range []Order{LittleEndian, BigEndian} {
			roundTripValues(t, order,
				func(w *Writer, v uint64) { w.WriteZeta(v, k) },
				func(r *Reader) uint64 { return r.ReadZeta(k) },
				vals)
		}
	}
}

func TestUnaryRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, 2, 3, 7, 8, 63, 64, 127, 1000}
	for _, order := range []Order{LittleEndian, BigEndian} {
		roundTripValues(t, order, (*Writer).WriteUnary, (*Reader).ReadUnary, vals)
	}
}

func TestZetaMatchesGammaAtK1(t *testing.T) {
	// ζ_1 is mathematically identical to γ.
	for _, n := range testValues(200, 1<<24) {
		var gbuf, zbuf bytes.Buffer
		gw := NewWriter(&gbuf, LittleEndian)
		gw.WriteGamma(n)
		gw.Flush()
		zw := NewWriter(&zbuf, LittleEndian)
		zw.WriteZeta(n, 1)
		zw.Flush()
		if !bytes.Equal(gbuf.Bytes(), zbuf.Bytes()) {
			t.Fatalf("n=%d: gamma and zeta_1 diverge: %x vs %x", n, gbuf.Bytes(), zbuf.Bytes())
		}
	}
}

func TestSignedGammaRoundTrip(t *testing.T) {
	vals := []int64{0, 1, -1, 2, -2, 1000, -1000, 1 << 20, -(1 << 20)}
	var buf bytes.Buffer
	bw := NewWriter(&buf, LittleEndian)
	for _, v := range vals {
		bw.WriteSignedGamma(v)
	}
	bw.Flush()
	br := NewReader(bytes.NewReader(buf.Bytes()), LittleEndian)
	for i, want := range vals {
		if got := br.ReadSignedGamma(); got != want {
			t.Fatalf("value %d: got %d, want %d", i, got, want)
		}
	}
}

func TestBitPosMatchesBytesWritten(t *testing.T) {
	var buf bytes.Buffer
	bw := NewWriter(&buf, LittleEndian)
	for i := 0; i < 100; i++ {
		bw.WriteGamma(uint64(i))
	}
	n, err := bw.Flush()
	if err != nil {
		t.Fatal(err)
	}
	if n != bw.BitPos() {
		t.Fatalf("Flush returned %d, BitPos() is %d", n, bw.BitPos())
	}
	wantBytes := (n + 7) / 8
	if int64(buf.Len()) != wantBytes {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), wantBytes)
	}
}

func TestTruncatedStreamPanics(t *testing.T) {
	br := NewReader(bytes.NewReader(nil), LittleEndian)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty stream")
		}
	}()
	br.ReadGamma()
}
