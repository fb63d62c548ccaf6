package core

import (
	"io"
	"io/fs"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local, disk-backed filesystem.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// FS is the primary filesystem interface combining all core operations.
// FS explicitly embeds fs.FS for stdlib compatibility.
//
// All filesystem providers MUST implement this interface, which is composed
// of four sub-interfaces representing different categories of operations:
// ReadFS, WriteFS, ManageFS, and WalkFS.
type FS interface {
	fs.FS // Ensures stdlib compatibility (provides Open returning fs.File)
	ReadFS
	WriteFS
	ManageFS
	WalkFS

	// Type returns the underlying filesystem type. This lets callers
	// introspect whether the filesystem is backed by a real disk or by
	// in-memory storage.
	Type() FSType
}

// ReadFS defines read-only filesystem operations.
// All providers MUST support this interface.
type ReadFS interface {
	// Open opens the named file for reading.
	// Returns fs.File for compatibility with the io/fs package; callers can
	// type-assert to File for write operations.
	//
	// The returned file should be closed when no longer needed.
	Open(name string) (fs.File, error)

	// Stat returns file metadata for the named file.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir reads the directory named by dirname and returns a list of
	// directory entries in the provider's enumeration order.
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the named file and returns its contents.
	// A successful call returns err == nil, not err == EOF.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named file or directory exists.
	//
	// A false result with a non-nil error indicates the existence could not
	// be determined, not that the file doesn't exist.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations.
type WriteFS interface {
	// Create creates or truncates the named file for writing.
	// If the file already exists, it is truncated. The returned file must be
	// closed when no longer needed.
	Create(name string) (File, error)

	// OpenFile opens a file with the specified flags and permissions.
	// The flags are a bitmask (O_RDONLY, O_WRONLY, O_RDWR, O_CREATE,
	// O_TRUNC, ...). Flag support varies by provider.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// WriteFile writes data to the named file, creating it if necessary and
	// truncating it if it already exists.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory named path, along with any necessary
	// parents. If path is already a directory, MkdirAll does nothing.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines file and directory management operations.
type ManageFS interface {
	// Remove removes the named file or empty directory.
	Remove(name string) error

	// RemoveAll removes path and any children it contains.
	// If the path does not exist, RemoveAll returns nil.
	RemoveAll(path string) error

	// Rename renames (moves) oldpath to newpath.
	// Local providers use atomic rename; either the move happens or the
	// filesystem is left untouched.
	Rename(oldpath, newpath string) error
}

// WalkFS defines directory tree traversal operations.
type WalkFS interface {
	// Walk walks the file tree rooted at root, calling walkFn for each file
	// or directory in the tree, including root.
	//
	// All errors that arise visiting files and directories are filtered by
	// walkFn. Entries within a directory are visited in the provider's
	// enumeration order, which is not guaranteed stable across platforms.
	//
	// Walk does not follow symbolic links.
	Walk(root string, walkFn fs.WalkDirFunc) error
}

// File represents an open file handle.
// File extends fs.File with write operations.
//
// All provider File types implement both File and fs.File, allowing them to
// be used with stdlib functions that accept fs.File while also supporting
// writes through io.Writer.
type File interface {
	fs.File // Embeds: Read([]byte) (int, error), Close() error, Stat() (fs.FileInfo, error)

	// Write writes len(p) bytes from p to the underlying data stream.
	io.Writer

	// Name returns the name of the file as provided to Open or Create.
	Name() string
}

// Truncater allows truncating a file to a specified size.
//
// Not all File implementations support truncation. Callers should use a
// type assertion to check if this capability is available:
//
//	if t, ok := file.(core.Truncater); ok {
//	    err := t.Truncate(size)
//	}
type Truncater interface {
	// Truncate changes the size of the file without changing the I/O offset.
	Truncate(size int64) error
}

// Syncer allows syncing file contents to stable storage.
//
// Not all File implementations support sync; in-memory providers treat it
// as a no-op.
type Syncer interface {
	// Sync commits the current contents of the file to stable storage.
	Sync() error
}

// SymlinkFS defines symbolic link operations (typically local filesystems
// only). Use a type assertion to check for support:
//
//	if sfs, ok := fsys.(core.SymlinkFS); ok {
//	    err := sfs.Symlink("target", "linkname")
//	}
type SymlinkFS interface {
	// Symlink creates a symbolic link named newname pointing to oldname.
	Symlink(oldname, newname string) error

	// Readlink returns the destination of the named symbolic link.
	Readlink(name string) (string, error)
}
