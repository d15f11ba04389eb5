// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Signature sidecars, parameter files, and the paralaunch config all follow
// the same 3-step CUE flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to a Go value
//
// # Usage
//
//	//go:embed sigfile_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseAndDecode[Sidecar](
//	    schema,
//	    data,
//	    "#Signature",
//	    cueutil.WithFilename("deploy.sh.sig.cue"),
//	)
//	if err != nil {
//	    return nil, err // error includes the CUE path of the offending field
//	}
package cueutil
