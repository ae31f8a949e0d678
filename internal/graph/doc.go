// Package graph records which file required which during one compilation.
//
// # Why Graph Package Exists
//
// A compilation inlines files recursively and throws the structure away: the
// output is one flat text. The require graph keeps that structure so callers
// can report it (the CLI's -deps tree) without re-scanning the sources.
//
// # Lifecycle
//
//  1. **Created** by the compiler session with the root file as its only node
//  2. **Populated** with one edge per successful require, in source order
//  3. **Returned** to the caller inside compiler.Result and never mutated again
//
// # Thread-Safety
//
// A Graph is owned by a single compilation and is not safe for concurrent
// mutation. Once returned it is only read.
package graph
