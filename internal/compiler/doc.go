// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package compiler expands directive calls in .jess sources into a single
// merged text.
//
// # Pipeline
//
// The compiler never parses the host language. It scans the text for calls
// of the form
//
//	jess.<name>(<arguments>);
//
// (namespace and name case-insensitive, arguments possibly spanning lines and
// matched up to the first `);`), classifies the arguments with package args,
// and hands every call with a registered handler to that handler. The
// handler's result replaces the call in the text accumulated so far, so
// later calls see the effect of earlier ones. Expansions are not rescanned;
// nested directives are only expanded because `require` compiles the
// included file before returning it. Calls to unknown directives stay in the
// output verbatim.
//
// # Sessions
//
// Every CompileFile call owns a session: the set of visited files with their
// modification times, the stack of files being compiled, and the require
// graph. Search paths are copied per nesting level, so a nested compile never
// leaks its directory to siblings or parents. A Compiler holds no mutable
// state and may be shared between goroutines.
//
// # Caching
//
// CachedCompile takes either a root path or a Record from a previous call and
// only recompiles when forced or when a recorded file is missing or newer
// than recorded.
package compiler
