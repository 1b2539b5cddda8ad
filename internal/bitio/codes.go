// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import "github.com/vigna/webgraph/internal/errkit"

// CodeKind names one of the four universal code families. A field
// position (outdegrees, references, blocks, intervals, residuals) picks
// one CodeKind, and the dynamic reader/writer below dispatches to it.
type CodeKind int

const (
	Unary CodeKind = iota
	Gamma
	Delta
	Zeta
)

func (k CodeKind) String() string {
	switch k {
	case Unary:
		return "UNARY"
	case Gamma:
		return "GAMMA"
	case Delta:
		return "DELTA"
	case Zeta:
		return "ZETA"
	default:
		return "UNKNOWN"
	}
}

// ParseCodeKind parses one of the .properties compressionflags tokens.
func ParseCodeKind(s string) (CodeKind, bool) {
	switch s {
	case "UNARY":
		return Unary, true
	case "GAMMA":
		return Gamma, true
	case "DELTA":
		return Delta, true
	case "ZETA":
		return Zeta, true
	}
	return 0, false
}

// WriteCode dispatches to the code family named by kind. zetaK is only
// consulted when kind == Zeta.
func (bw *Writer) WriteCode(kind CodeKind, n uint64, zetaK uint) {
	switch kind {
	case Unary:
		bw.WriteUnary(n)
	case Gamma:
		bw.WriteGamma(n)
	case Delta:
		bw.WriteDelta(n)
	case Zeta:
		bw.WriteZeta(n, zetaK)
	default:
		errkit.Panic(errkit.Unsupported, "bitio: unsupported code kind %d", kind)
	}
}

// ReadCode is the decode-side counterpart of WriteCode.
func (br *Reader) ReadCode(kind CodeKind, zetaK uint) uint64 {
	switch kind {
	case Unary:
		return br.ReadUnary()
	case Gamma:
		return br.ReadGamma()
	case Delta:
		return br.ReadDelta()
	case Zeta:
		return br.ReadZeta(zetaK)
	default:
		errkit.Panic(errkit.Unsupported, "bitio: unsupported code kind %d", kind)
		return 0
	}
}
