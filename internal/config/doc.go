// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates the paralaunch configuration: a CUE
// config file validated against an embedded schema, merged into viper so
// environment variables with the PARALAUNCH_ prefix can override fields.
package config
