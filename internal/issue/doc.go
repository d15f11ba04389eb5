// SPDX-License-Identifier: MPL-2.0

// Package issue catalogs the user-facing failure kinds and renders
// actionable guidance for each one.
package issue
