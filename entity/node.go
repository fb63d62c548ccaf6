package entity

import (
	"github.com/plaraje/pineutils/core"
	"github.com/plaraje/pineutils/errors"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	// KindFile identifies a file node.
	KindFile Kind = iota
	// KindDirectory identifies a directory node.
	KindDirectory
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Node is the two-variant union of *File and *Directory.
// The shared capability set is name, path, staged rename, and save;
// dispatch on Kind rather than type inspection where the variant matters.
//
// The union is sealed: only the two entity types in this package satisfy
// the interface.
type Node interface {
	// Kind returns the variant tag of the node.
	Kind() Kind

	// Path returns the node's current path.
	Path() Path

	// Name returns the node's own name (final path component).
	Name() string

	// Rename stages a name change. The filesystem is untouched until Save.
	Rename(newName string)

	// Save applies the staged rename, if any, and for files flushes loaded
	// content back to disk.
	Save() error

	// node seals the union.
	node()
}

// Resolve stats path on fsys and returns the matching entity variant.
// A missing path yields a NOT_FOUND error; other stat failures yield
// IO_FAILURE.
func Resolve(fsys core.FS, path string) (Node, error) {
	if path == "" {
		return nil, errors.New(errors.CodeInvalidInput, "empty path")
	}
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, core.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.CodeNotFound, "no such file or directory: %s", path)
		}
		return nil, errors.Wrapf(err, errors.CodeIOFailure, "failed to stat %s", path)
	}
	if info.IsDir() {
		return NewDirectory(fsys, path), nil
	}
	return NewFile(fsys, path), nil
}

// Pick converts a collaborator file-picker result into a Node.
// A "nothing selected" result (ok == false) and an empty path are both an
// explicit absence: they yield (nil, false, nil), never an empty-string
// entity.
func Pick(fsys core.FS, selection string, ok bool) (Node, bool, error) {
	if !ok || selection == "" {
		return nil, false, nil
	}
	n, err := Resolve(fsys, selection)
	if err != nil {
		return nil, false, err
	}
	return n, true, nil
}

// renameOnDisk moves the entity at p to newName inside p's parent.
// On failure the returned path equals p, so the caller's in-memory state
// stays consistent with the filesystem.
func renameOnDisk(fsys core.FS, p Path, newName string) (Path, error) {
	next := p.Parent().Join(newName)
	if err := fsys.Rename(p.String(), next.String()); err != nil {
		return p, errors.Wrapf(err, errors.CodeIOFailure, "failed to rename %s to %s", p, newName)
	}
	return next, nil
}
