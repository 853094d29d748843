// SPDX-License-Identifier: MPL-2.0

// Package autoload lazily resolves shell command names to executable script
// sources.
//
// A name resolves either to a built-in script or to a file named
// <cmd><suffix> in one of the directories listed by a configurable search
// variable. Resolutions are remembered in a bounded recency cache: hits
// within the staleness interval answer without touching the filesystem, and
// names known not to resolve are remembered too (negative caching), so a
// missing command is not searched for on every dispatch.
//
// The side-effecting operations (loading scripts, unloading entries) belong
// to the Loader handle, which must be driven from a single goroutine. The
// Manager's CanLoad probe is safe for concurrent use.
package autoload
