// Package billy provides go-billy backed implementations of core.FS.
//
// Two backends are exposed through a single provider type:
//
//	fsys := billy.NewLocal()  // osfs, rooted at "/"
//	mem := billy.NewMemory()  // memfs, initially empty
//
// Both satisfy core.FS, so the entity and archive packages work identically
// against disk and memory. The in-memory backend is the fixture of choice
// for hermetic tests.
//
// Unwrap exposes the underlying billy.Filesystem for interoperability with
// other go-billy consumers.
package billy
