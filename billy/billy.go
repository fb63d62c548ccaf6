package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/plaraje/pineutils/core"
)

// FS adapts a billy.Filesystem to core.FS.
// The same adapter serves both the osfs and memfs backends; only the
// reported core.FSType differs.
type FS struct {
	bfs    billy.Filesystem
	fstype core.FSType
}

// NewLocal creates a go-billy backed local filesystem rooted at "/".
func NewLocal() *FS {
	return &FS{bfs: osfs.New("/"), fstype: core.FSTypeLocal}
}

// NewMemory creates a go-billy backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory() *FS {
	return &FS{bfs: memfs.New(), fstype: core.FSTypeMemory}
}

// Unwrap returns the underlying billy.Filesystem for go-billy interop.
func (f *FS) Unwrap() billy.Filesystem {
	return f.bfs
}

// Type reports whether the backend is disk-backed or in-memory.
func (f *FS) Type() core.FSType {
	return f.fstype
}

// normalize converts paths to use forward slashes consistently.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// Open opens the named file for reading.
// The returned file also implements core.File.
func (f *FS) Open(name string) (fs.File, error) {
	name = normalize(name)
	bf, err := f.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	return &File{file: bf, fs: f.bfs, name: name}, nil
}

// Stat returns file metadata for the named file.
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	return f.bfs.Stat(normalize(name))
}

// ReadDir reads the named directory.
// Billy returns []fs.FileInfo, so entries are wrapped into fs.DirEntry.
// Billy backends report entries via lstat, so symlinks appear as symlinks
// rather than their targets.
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := f.bfs.ReadDir(normalize(name))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// ReadFile reads the named file and returns its contents.
func (f *FS) ReadFile(name string) ([]byte, error) {
	bf, err := f.bfs.Open(normalize(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = bf.Close() }()
	return io.ReadAll(bf)
}

// Exists reports whether the named file or directory exists.
func (f *FS) Exists(name string) (bool, error) {
	_, err := f.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Create creates or truncates the named file for writing.
func (f *FS) Create(name string) (core.File, error) {
	name = normalize(name)
	bf, err := f.bfs.Create(name)
	if err != nil {
		return nil, err
	}
	return &File{file: bf, fs: f.bfs, name: name}, nil
}

// OpenFile opens a file with the specified flags and permissions.
func (f *FS) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = normalize(name)
	bf, err := f.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{file: bf, fs: f.bfs, name: name}, nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (f *FS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	bf, err := f.bfs.OpenFile(normalize(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() { _ = bf.Close() }()
	_, err = bf.Write(data)
	return err
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (f *FS) MkdirAll(path string, perm fs.FileMode) error {
	return f.bfs.MkdirAll(normalize(path), perm)
}

// Remove removes the named file or empty directory.
func (f *FS) Remove(name string) error {
	return f.bfs.Remove(normalize(name))
}

// RemoveAll removes path and any children it contains.
// Billy has no RemoveAll, so removal recurses over ReadDir.
func (f *FS) RemoveAll(path string) error {
	path = normalize(path)
	info, err := f.bfs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if !info.IsDir() {
		return f.bfs.Remove(path)
	}

	entries, err := f.bfs.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := f.RemoveAll(normalize(filepath.Join(path, entry.Name()))); err != nil {
			return err
		}
	}

	return f.bfs.Remove(path)
}

// Rename renames (moves) oldpath to newpath.
func (f *FS) Rename(oldpath, newpath string) error {
	return f.bfs.Rename(normalize(oldpath), normalize(newpath))
}

// Walk walks the file tree rooted at root, calling walkFn for each file or
// directory in the tree, including root. Symbolic links are reported but
// never followed.
func (f *FS) Walk(root string, walkFn fs.WalkDirFunc) error {
	root = normalize(root)
	info, err := f.bfs.Lstat(root)
	if err != nil {
		err = walkFn(root, nil, err)
	} else {
		err = f.walk(root, &dirEntry{info: info}, walkFn)
	}
	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func (f *FS) walk(path string, d fs.DirEntry, walkFn fs.WalkDirFunc) error {
	if err := walkFn(path, d, nil); err != nil || !d.IsDir() {
		if errors.Is(err, fs.SkipDir) && d.IsDir() {
			err = nil
		}
		return err
	}

	entries, err := f.bfs.ReadDir(path)
	if err != nil {
		// Report the failed directory once and let walkFn decide.
		if err := walkFn(path, d, err); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		next := normalize(filepath.Join(path, entry.Name()))
		if err := f.walk(next, &dirEntry{info: entry}, walkFn); err != nil {
			if errors.Is(err, fs.SkipDir) {
				continue
			}
			return err
		}
	}
	return nil
}

// Symlink creates a symbolic link named newname pointing to oldname.
func (f *FS) Symlink(oldname, newname string) error {
	return f.bfs.Symlink(oldname, normalize(newname))
}

// Readlink returns the destination of the named symbolic link.
func (f *FS) Readlink(name string) (string, error) {
	return f.bfs.Readlink(normalize(name))
}

// Compile-time interface checks.
var (
	_ core.FS        = (*FS)(nil)
	_ core.SymlinkFS = (*FS)(nil)
)
