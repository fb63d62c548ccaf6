// Package entity models files and directories as tree entities on top of
// the core filesystem abstraction.
//
// Three types carry the model:
//
//   - Path: an immutable value type deriving filename, extension, parent,
//     and volume from a path string, with no I/O.
//   - File: a file entity supporting chunked loading, in-memory byte
//     patching, staged rename, save, and three-valued comparison.
//   - Directory: a directory entity supporting eager and lazy recursive
//     walks, glob search, recursive tree comparison, and staged rename.
//
// File and Directory form a two-variant union behind the Node interface.
// A Directory's child list is a snapshot taken by Open; it is not kept in
// sync with the real filesystem.
//
// Entities are bound to a core.FS at construction, so the same code works
// against local disk and the in-memory provider:
//
//	fsys := billy.NewMemory()
//	dir := entity.NewDirectory(fsys, "/photos")
//	for node, err := range dir.Find("*.jpg") {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(node.Path())
//	}
//
// All entities are exclusively owned by their caller; no instance is safe
// for concurrent use.
package entity
