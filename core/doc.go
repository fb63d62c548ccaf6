// Package core provides the foundational interfaces for the pineutils
// filesystem abstraction.
//
// This package defines the contracts filesystem providers must implement,
// enabling the entity, exif, and archive packages to work identically
// against a local disk and an in-memory filesystem.
//
// # Design Philosophy
//
//   - Zero dependencies: only the Go standard library
//   - Interface composition: small focused interfaces compose into FS
//   - Stdlib compatibility: extends fs.FS and fs.File rather than replacing them
//   - Optional capabilities: type assertions expose provider-specific features
//
// # Interface Hierarchy
//
// The main FS interface is composed of four sub-interfaces:
//
//   - ReadFS: read-only operations (Open, Stat, ReadDir, ReadFile, Exists)
//   - WriteFS: write operations (Create, OpenFile, WriteFile, MkdirAll)
//   - ManageFS: file management (Remove, RemoveAll, Rename)
//   - WalkFS: directory traversal (Walk)
//
// Optional interfaces for provider-specific capabilities:
//
//   - Truncater, Syncer: file handle capabilities
//   - SymlinkFS: symbolic link operations
//
// # Usage Example
//
//	func Checksum(fsys core.FS, name string) ([]byte, error) {
//	    data, err := fsys.ReadFile(name)
//	    if err != nil {
//	        return nil, err
//	    }
//	    sum := sha256.Sum256(data)
//	    return sum[:], nil
//	}
//
// Concrete providers live in separate packages; see
// github.com/plaraje/pineutils/billy for the go-billy backed local and
// in-memory providers.
package core
