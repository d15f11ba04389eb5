// SPDX-License-Identifier: MPL-2.0

// Package paramfile parses declarative parameter files and models the
// heterogeneous values they carry.
//
// A parameter file is a CUE (or plain JSON, which CUE subsumes) record whose
// top-level attributes are parameter names. One attribute is reserved: the
// ScriptName label identifying the run. Attribute values may be scalars,
// ordered lists, or nested records; they are decoded into the tagged Value
// variant so downstream coercion is an exhaustive switch rather than a chain
// of type assertions.
package paramfile
