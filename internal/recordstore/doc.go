// Package recordstore persists compilation records between runs.
//
// A Store holds at most one record. Watch mode keeps its record in a Memory
// store; the CLI's -cache flag uses a File store so that a later invocation
// can skip compilation when nothing changed.
package recordstore
