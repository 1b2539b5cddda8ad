// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"os"

	"github.com/vigna/webgraph/bvcomp"
	"github.com/vigna/webgraph/internal/errkit"
)

func loadProperties(basename string) (bvcomp.Properties, error) {
	path := basename + PropertiesExt
	f, err := os.Open(path)
	if err != nil {
		return bvcomp.Properties{}, errkit.WithPath(errkit.IOFailure, path, err)
	}
	defer f.Close()
	props, err := bvcomp.UnmarshalProperties(f)
	if err != nil {
		return bvcomp.Properties{}, errkit.WithPath(errkit.PropertyParse, path, err)
	}
	return props, nil
}

func saveProperties(basename string, props bvcomp.Properties) error {
	path := basename + PropertiesExt
	f, err := os.Create(path)
	if err != nil {
		return errkit.WithPath(errkit.IOFailure, path, err)
	}
	defer f.Close()
	if err := props.Marshal(f); err != nil {
		return errkit.WithPath(errkit.IOFailure, path, err)
	}
	return nil
}
