// SPDX-License-Identifier: MPL-2.0

// Package launch orchestrates one supervised run: signature discovery,
// parameter binding, job supervision, and the converged failure path that
// writes the diagnostic artifact and notifies the operator.
package launch
