package entity

import (
	"io/fs"
	"iter"
	"strings"

	"github.com/plaraje/pineutils/billy"
	"github.com/plaraje/pineutils/core"
	"github.com/plaraje/pineutils/errors"
	"github.com/plaraje/pineutils/exif"
)

// Directory is a directory entity. It owns one Path and a snapshot list of
// child nodes taken by the last Open; the snapshot is not kept in sync with
// the real filesystem. Child ordering follows filesystem enumeration order
// and is not guaranteed stable across platforms.
//
// A Directory is exclusively owned by its caller and not safe for
// concurrent use.
type Directory struct {
	fsys     core.FS
	path     Path
	children []Node
	newName  string
}

// NewDirectory creates a directory entity for path on the given filesystem.
// A nil fsys defaults to the local disk provider.
func NewDirectory(fsys core.FS, path string) *Directory {
	if fsys == nil {
		fsys = billy.NewLocal()
	}
	return &Directory{fsys: fsys, path: NewPath(path)}
}

// Kind returns KindDirectory.
func (d *Directory) Kind() Kind { return KindDirectory }

// Path returns the directory's current path.
func (d *Directory) Path() Path { return d.path }

// Name returns the directory's own name (final path component).
func (d *Directory) Name() string { return d.path.Filename() }

// Children returns the snapshot taken by the last Open.
// Nil until Open has been called.
func (d *Directory) Children() []Node { return d.children }

func (d *Directory) node() {}

// Open eagerly materializes the full recursive listing into the child
// snapshot and returns it. Unreadable subdirectories are skipped; an
// unreadable root fails with IO_FAILURE and leaves the previous snapshot
// in place.
func (d *Directory) Open() ([]Node, error) {
	var children []Node
	for node, err := range d.Iterate() {
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	d.children = children
	return d.children, nil
}

// Iterate produces a lazy, finite, one-shot sequence of every node under
// the directory, recursively, without retaining them in the entity's own
// state. Files are yielded before subdirectories within each level.
//
// Unreadable subdirectories are skipped rather than aborting the walk, and
// symbolic links are reported as leaf file nodes and never followed, so
// link cycles cannot cause unbounded recursion. An unreadable root yields
// a single IO_FAILURE.
func (d *Directory) Iterate() iter.Seq2[Node, error] {
	return func(yield func(Node, error) bool) {
		d.walk(d.path, true, yield)
	}
}

// walk recursively enumerates dir. Returns false once the consumer stops.
func (d *Directory) walk(dir Path, isRoot bool, yield func(Node, error) bool) bool {
	entries, err := d.fsys.ReadDir(dir.String())
	if err != nil {
		if isRoot {
			yield(nil, errors.Wrapf(err, errors.CodeIOFailure, "failed to read directory %s", dir))
			return false
		}
		// Fail-soft: skip unreadable subdirectories.
		return true
	}

	var subdirs []Path
	for _, entry := range entries {
		child := dir.Join(entry.Name())
		if entry.Type()&fs.ModeSymlink != 0 {
			// Symlinks are leaves regardless of target kind.
			if !yield(&File{fsys: d.fsys, path: child}, nil) {
				return false
			}
			continue
		}
		if entry.IsDir() {
			subdirs = append(subdirs, child)
			continue
		}
		if !yield(&File{fsys: d.fsys, path: child}, nil) {
			return false
		}
	}

	for _, sub := range subdirs {
		if !yield(&Directory{fsys: d.fsys, path: sub}, nil) {
			return false
		}
	}
	for _, sub := range subdirs {
		if !d.walk(sub, false, yield) {
			return false
		}
	}
	return true
}

// Find translates a glob pattern into a matcher and produces a lazy,
// finite sequence of the matching nodes anywhere in the recursive walk.
//
// The mini-language: '*' matches any run of characters, '?' matches
// exactly one character, anything else matches literally, and the pattern
// is anchored to the end of each candidate name.
func (d *Directory) Find(pattern string) iter.Seq2[Node, error] {
	return func(yield func(Node, error) bool) {
		matcher, err := compileGlob(pattern)
		if err != nil {
			yield(nil, err)
			return
		}
		for node, err := range d.Iterate() {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !matcher.MatchString(node.Name()) {
				continue
			}
			if !yield(node, nil) {
				return
			}
		}
	}
}

// Metadata summarizes a directory: its own name and path, the total
// number of nodes in the recursive walk, and the decoded EXIF tags of
// every contained JPEG file.
type Metadata struct {
	Name       string
	Path       string
	TotalItems int
	EXIF       map[string]EXIFResult
}

// EXIFResult is the decode outcome for one JPEG file. Exactly one of the
// fields is set.
type EXIFResult struct {
	Tags exif.TagMap
	Err  error
}

// Metadata walks the directory and collects summary metadata, running the
// EXIF decoder over every file with a .jpg or .jpeg extension (matched
// case-insensitively). Read and decode failures are captured per file in
// the EXIF map rather than aborting the pass; only a failed walk of the
// root returns an error.
func (d *Directory) Metadata() (Metadata, error) {
	meta := Metadata{
		Name: d.Name(),
		Path: d.path.String(),
		EXIF: make(map[string]EXIFResult),
	}
	for node, err := range d.Iterate() {
		if err != nil {
			return Metadata{}, err
		}
		meta.TotalItems++
		if node.Kind() != KindFile {
			continue
		}
		switch strings.ToLower(node.Path().Ext()) {
		case ".jpg", ".jpeg":
			meta.EXIF[node.Path().String()] = decodeFileEXIF(d.fsys, node.Path())
		}
	}
	return meta, nil
}

func decodeFileEXIF(fsys core.FS, p Path) EXIFResult {
	data, err := fsys.ReadFile(p.String())
	if err != nil {
		return EXIFResult{Err: errors.Wrapf(err, errors.CodeIOFailure, "failed to read %s", p)}
	}
	tags, err := exif.Decode(data)
	if err != nil {
		return EXIFResult{Err: err}
	}
	return EXIFResult{Tags: tags}
}

// Rename stages a name change for the directory itself.
// No disk effect until Save; children are unaffected in memory, so a
// caller needing updated child paths must re-walk after Save.
func (d *Directory) Rename(newName string) {
	d.newName = newName
}

// Save applies the staged rename under the same atomicity contract as
// File.Save: the in-memory Path changes only if the on-disk move happened.
func (d *Directory) Save() error {
	if d.newName == "" {
		return nil
	}
	next, err := renameOnDisk(d.fsys, d.path, d.newName)
	if err != nil {
		return err
	}
	d.path = next
	d.newName = ""
	return nil
}

// Compare recursively verifies that this directory and other are
// isomorphic: every entry name on one side exists on the other, files
// present on both sides are byte-identical, and subdirectories satisfy the
// same property recursively. The verdict is false on the first structural
// or content mismatch, and the comparison is symmetric.
//
// Both filesystems may differ (e.g. a disk tree against an in-memory
// tree); file content is always compared byte-for-byte. I/O failures while
// reading either side surface as IO_FAILURE errors, never as a silent
// false.
func (d *Directory) Compare(other *Directory) (bool, error) {
	return compareTrees(d.fsys, d.path, other.fsys, other.path)
}

func compareTrees(afs core.FS, apath Path, bfs core.FS, bpath Path) (bool, error) {
	aEntries, err := readEntryMap(afs, apath)
	if err != nil {
		return false, err
	}
	bEntries, err := readEntryMap(bfs, bpath)
	if err != nil {
		return false, err
	}

	// Symmetry: every name on either side must exist on the other.
	if len(aEntries) != len(bEntries) {
		return false, nil
	}

	for name, aEntry := range aEntries {
		bEntry, ok := bEntries[name]
		if !ok || aEntry.IsDir() != bEntry.IsDir() {
			return false, nil
		}

		if aEntry.IsDir() {
			same, err := compareTrees(afs, apath.Join(name), bfs, bpath.Join(name))
			if err != nil || !same {
				return same, err
			}
			continue
		}

		same, err := compareFileContent(afs, apath.Join(name), bfs, bpath.Join(name))
		if err != nil || !same {
			return same, err
		}
	}
	return true, nil
}

func readEntryMap(fsys core.FS, dir Path) (map[string]fs.DirEntry, error) {
	entries, err := fsys.ReadDir(dir.String())
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIOFailure, "failed to read directory %s", dir)
	}
	byName := make(map[string]fs.DirEntry, len(entries))
	for _, entry := range entries {
		byName[entry.Name()] = entry
	}
	return byName, nil
}

// compareFileContent loads both sides and compares their chunk lists
// directly, so entities on different filesystems never short-circuit on
// equal path strings.
func compareFileContent(afs core.FS, apath Path, bfs core.FS, bpath Path) (bool, error) {
	a := &File{fsys: afs, path: apath}
	b := &File{fsys: bfs, path: bpath}
	if err := a.Load(DefaultChunkSize); err != nil {
		return false, err
	}
	if err := b.Load(DefaultChunkSize); err != nil {
		return false, err
	}
	return compareChunks(a.chunks, b.chunks) == VerdictMatch, nil
}
