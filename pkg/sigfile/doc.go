// SPDX-License-Identifier: MPL-2.0

// Package sigfile discovers the declared parameter signature of a target
// script.
//
// Discovery is a capability: the core depends on the Provider interface, and
// each supported target kind contributes one implementation. Two providers
// ship today — a CUE sidecar (<script>.sig.cue) and a header-annotation
// parser for plain shell scripts. Both surface the same contract: an ordered
// signature (declaration order is the positional calling convention) plus a
// name-to-value mapping of script-declared defaults.
package sigfile
