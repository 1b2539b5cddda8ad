// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvcomp

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/magiconair/properties"

	"github.com/vigna/webgraph/internal/bitio"
	"github.com/vigna/webgraph/internal/errkit"
)

// Properties is the sidecar metadata written alongside a .graph and
// .offsets pair: node and arc counts, the chosen code family per field,
// the three structural parameters, and the stream's bit order.
type Properties struct {
	Nodes, Arcs int64
	Flags       Flags
	Order       bitio.Order
}

const (
	keyNodes             = "nodes"
	keyArcs              = "arcs"
	keyCompressionFlags  = "compressionflags"
	keyWindowSize        = "windowsize"
	keyMaxRefCount       = "maxrefcount"
	keyMinIntervalLength = "minintervallength"
	keyEndianness        = "endianness"
	keyZetaK             = "zetak"
)

// fieldNames fixes the comma-joined order compressionflags is written and
// read in: outdegrees, references, blocks, intervals, residuals.
var fieldNames = [...]string{"outdegrees", "references", "blocks", "intervals", "residuals"}

// Marshal renders p as ISO-8859-1 Java-properties text per the
// sidecar format documented alongside Properties.
func (p Properties) Marshal(w io.Writer) (err error) {
	defer errkit.Recover(&err)

	props := properties.NewProperties()
	must := func(key, val string) {
		if _, _, err := props.Set(key, val); err != nil {
			errkit.Panic(errkit.PropertyParse, "bvcomp: set %s: %v", key, err)
		}
	}

	must(keyNodes, strconv.FormatInt(p.Nodes, 10))
	must(keyArcs, strconv.FormatInt(p.Arcs, 10))
	must(keyCompressionFlags, p.compressionFlagsString())
	must(keyWindowSize, strconv.Itoa(p.Flags.Window))
	must(keyMaxRefCount, strconv.Itoa(p.Flags.MaxRefCount))
	must(keyMinIntervalLength, strconv.Itoa(p.Flags.MinIntervalLength))
	must(keyEndianness, p.Order.String())
	if p.usesZeta() {
		must(keyZetaK, strconv.FormatUint(uint64(p.Flags.ZetaK), 10))
	}

	_, err := props.Write(w, properties.ISO_8859_1)
	return err
}

func (p Properties) usesZeta() bool {
	for _, k := range []bitio.CodeKind{p.Flags.Outdegrees, p.Flags.References, p.Flags.Blocks, p.Flags.Intervals, p.Flags.Residuals} {
		if k == bitio.Zeta {
			return true
		}
	}
	return false
}

func (p Properties) compressionFlagsString() string {
	kinds := [...]bitio.CodeKind{p.Flags.Outdegrees, p.Flags.References, p.Flags.Blocks, p.Flags.Intervals, p.Flags.Residuals}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s:%s", fieldNames[i], k)
	}
	return strings.Join(parts, ",")
}

// UnmarshalProperties parses the ISO-8859-1 Java-properties text read
// from r into a Properties value.
func UnmarshalProperties(r io.Reader) (p Properties, err error) {
	defer errkit.Recover(&err)

	raw, readErr := io.ReadAll(r)
	if readErr != nil {
		errkit.Panic(errkit.IOFailure, "bvcomp: read properties: %v", readErr)
	}
	props, loadErr := properties.LoadString(string(raw))
	if loadErr != nil {
		errkit.Panic(errkit.PropertyParse, "bvcomp: parse properties: %v", loadErr)
	}

	getInt := func(key string) int {
		v, ok := props.Get(key)
		if !ok {
			errkit.Panic(errkit.PropertyParse, "bvcomp: missing key %q", key)
		}
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			errkit.Panic(errkit.PropertyParse, "bvcomp: key %q: %v", key, convErr)
		}
		return n
	}
	getInt64 := func(key string) int64 {
		v, ok := props.Get(key)
		if !ok {
			errkit.Panic(errkit.PropertyParse, "bvcomp: missing key %q", key)
		}
		n, convErr := strconv.ParseInt(v, 10, 64)
		if convErr != nil {
			errkit.Panic(errkit.PropertyParse, "bvcomp: key %q: %v", key, convErr)
		}
		return n
	}

	p.Nodes = getInt64(keyNodes)
	p.Arcs = getInt64(keyArcs)
	p.Flags.Window = getInt(keyWindowSize)
	p.Flags.MaxRefCount = getInt(keyMaxRefCount)
	p.Flags.MinIntervalLength = getInt(keyMinIntervalLength)

	orderStr, ok := props.Get(keyEndianness)
	if !ok {
		errkit.Panic(errkit.PropertyParse, "bvcomp: missing key %q", keyEndianness)
	}
	order, ok := bitio.ParseOrder(orderStr)
	if !ok {
		errkit.Panic(errkit.PropertyParse, "bvcomp: unrecognized endianness %q", orderStr)
	}
	p.Order = order

	if zk, ok := props.Get(keyZetaK); ok {
		n, convErr := strconv.Atoi(zk)
		if convErr != nil {
			errkit.Panic(errkit.PropertyParse, "bvcomp: key %q: %v", keyZetaK, convErr)
		}
		p.Flags.ZetaK = uint(n)
	}

	cf, ok := props.Get(keyCompressionFlags)
	if !ok {
		errkit.Panic(errkit.PropertyParse, "bvcomp: missing key %q", keyCompressionFlags)
	}
	kinds, parseErr := parseCompressionFlags(cf)
	if parseErr != nil {
		errkit.Panic(errkit.PropertyParse, "bvcomp: %v", parseErr)
	}
	p.Flags.Outdegrees, p.Flags.References, p.Flags.Blocks, p.Flags.Intervals, p.Flags.Residuals =
		kinds[0], kinds[1], kinds[2], kinds[3], kinds[4]

	return p, nil
}

func parseCompressionFlags(s string) ([5]bitio.CodeKind, error) {
	var out [5]bitio.CodeKind
	want := map[string]int{}
	for i, name := range fieldNames {
		want[name] = i
	}
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return out, fmt.Errorf("malformed compressionflags entry %q", part)
		}
		idx, ok := want[kv[0]]
		if !ok {
			return out, fmt.Errorf("unrecognized compressionflags field %q", kv[0])
		}
		kind, ok := bitio.ParseCodeKind(kv[1])
		if !ok {
			return out, fmt.Errorf("unrecognized code kind %q for field %q", kv[1], kv[0])
		}
		out[idx] = kind
	}
	return out, nil
}
