// SPDX-License-Identifier: MPL-2.0

// Package config loads the shoal configuration.
//
// Configuration lives in a CUE file (config.cue) under the platform config
// directory. The file is validated against an embedded #Config schema,
// merged into Viper over the built-in defaults, and unmarshaled into the
// Config struct. A missing file is not an error; defaults apply.
package config
