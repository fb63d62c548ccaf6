package billy

import (
	"io"
	"io/fs"

	"github.com/go-git/go-billy/v5"

	"github.com/plaraje/pineutils/core"
)

// File wraps billy.File to implement both core.File and fs.File.
// The filename is stored explicitly because billy.File.Name() formats vary
// by backend; a filesystem reference is kept to answer Stat().
type File struct {
	file billy.File
	fs   billy.Basic
	name string
}

// Read implements io.Reader (required by fs.File).
func (f *File) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

// Write implements io.Writer (required by core.File).
func (f *File) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// Close implements io.Closer (required by fs.File).
func (f *File) Close() error {
	return f.file.Close()
}

// Stat implements fs.File.Stat via the owning filesystem, since billy.File
// does not provide Stat itself.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.fs.Stat(f.name)
}

// Name returns the name provided to Open/Create.
func (f *File) Name() string {
	return f.name
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Truncate implements core.Truncater.
func (f *File) Truncate(size int64) error {
	return f.file.Truncate(size)
}

// Sync implements core.Syncer.
// Backends without Sync (e.g. memfs) treat it as a no-op.
func (f *File) Sync() error {
	if syncer, ok := f.file.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

// Compile-time interface checks.
var (
	_ core.File      = (*File)(nil)
	_ fs.File        = (*File)(nil)
	_ io.Seeker      = (*File)(nil)
	_ core.Truncater = (*File)(nil)
	_ core.Syncer    = (*File)(nil)
)
