// SPDX-License-Identifier: MPL-2.0

// paralaunch launches externally supplied scripts with declared parameter
// signatures, binds their arguments, and supervises the run to a verdict.
package main

func main() {
	Execute()
}
