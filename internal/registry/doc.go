// Package registry provides the central "glue" for the directive system.
//
// The Registry maps directive names, as they appear after the `jess.` namespace
// in source text, to the Go handlers that expand them. Modules under the
// top-level modules/ directory contribute handlers through the Module
// interface, and the compiler dispatches every recognised call through the
// registry. Names are matched case-insensitively, mirroring the scanner.
package registry
