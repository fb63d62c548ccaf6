package entity

import (
	"bytes"
	"io"
	"iter"

	"github.com/plaraje/pineutils/billy"
	"github.com/plaraje/pineutils/core"
	"github.com/plaraje/pineutils/errors"
)

// DefaultChunkSize is the chunk size used when the caller passes a
// non-positive value to Load or Chunks.
const DefaultChunkSize = 8192

// File is a file entity. It owns one Path and, once loaded, an ordered
// sequence of byte chunks which is the authoritative content for Compare
// and Save. A pending rename is staged in memory and applied only by Save.
//
// A File is exclusively owned by its caller and not safe for concurrent use.
type File struct {
	fsys    core.FS
	path    Path
	chunks  [][]byte
	loaded  bool
	newName string
}

// NewFile creates a file entity for path on the given filesystem.
// A nil fsys defaults to the local disk provider.
func NewFile(fsys core.FS, path string) *File {
	if fsys == nil {
		fsys = billy.NewLocal()
	}
	return &File{fsys: fsys, path: NewPath(path)}
}

// Kind returns KindFile.
func (f *File) Kind() Kind { return KindFile }

// Path returns the file's current path.
func (f *File) Path() Path { return f.path }

// Name returns the filename component of the path.
func (f *File) Name() string { return f.path.Filename() }

// Ext returns the file extension including the leading dot.
func (f *File) Ext() string { return f.path.Ext() }

// Loaded reports whether the file's content has been loaded into chunks.
func (f *File) Loaded() bool { return f.loaded }

func (f *File) node() {}

// Chunks returns a lazy, finite, restartable sequence of byte chunks of at
// most chunkSize bytes each; the final chunk may be shorter. Each ranging
// of the sequence reopens the file, so the sequence can be consumed more
// than once. A non-positive chunkSize selects DefaultChunkSize.
//
// Open and read failures surface as IO_FAILURE through the second value.
func (f *File) Chunks(chunkSize int) iter.Seq2[[]byte, error] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return func(yield func([]byte, error) bool) {
		handle, err := f.fsys.Open(f.path.String())
		if err != nil {
			yield(nil, errors.Wrapf(err, errors.CodeIOFailure, "failed to open %s", f.path))
			return
		}
		defer func() { _ = handle.Close() }()

		for {
			buf := make([]byte, chunkSize)
			n, err := io.ReadFull(handle, buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return
			}
			if err != nil {
				yield(nil, errors.Wrapf(err, errors.CodeIOFailure, "failed to read %s", f.path))
				return
			}
		}
	}
}

// Load reads the file into the in-memory chunk list, replacing any chunks
// from a previous Load. It fails with IO_FAILURE if the path is absent or
// unreadable, in which case the previous chunk list is kept.
func (f *File) Load(chunkSize int) error {
	var chunks [][]byte
	for chunk, err := range f.Chunks(chunkSize) {
		if err != nil {
			return err
		}
		chunks = append(chunks, chunk)
	}
	f.chunks = chunks
	f.loaded = true
	return nil
}

// SetByte mutates a single byte at position pos inside chunk i of the
// loaded chunk list. It does not touch the disk. Fails with OUT_OF_RANGE
// if the file has not been loaded or the address is outside bounds.
func (f *File) SetByte(i, pos int, b byte) error {
	if !f.loaded {
		return errors.New(errors.CodeOutOfRange, "file content not loaded")
	}
	if i < 0 || i >= len(f.chunks) {
		return errors.Newf(errors.CodeOutOfRange, "chunk %d outside loaded range of %d", i, len(f.chunks))
	}
	if pos < 0 || pos >= len(f.chunks[i]) {
		return errors.Newf(errors.CodeOutOfRange, "position %d outside chunk of %d bytes", pos, len(f.chunks[i]))
	}
	f.chunks[i][pos] = b
	return nil
}

// Content returns the loaded chunks concatenated in order.
// Returns nil if the file has not been loaded.
func (f *File) Content() []byte {
	if !f.loaded {
		return nil
	}
	return bytes.Join(f.chunks, nil)
}

// Rename stages a name change. No disk effect until Save.
func (f *File) Rename(newName string) {
	f.newName = newName
}

// Save applies the staged rename, then rewrites the file from the loaded
// chunk list.
//
// The rename is applied first and the in-memory Path is updated only if
// the on-disk move succeeded, so a failure never leaves the Path and the
// filesystem disagreeing. If no chunks were loaded the entity is
// rename-only and the content write is skipped.
func (f *File) Save() error {
	if f.newName != "" {
		next, err := renameOnDisk(f.fsys, f.path, f.newName)
		if err != nil {
			return err
		}
		f.path = next
		f.newName = ""
	}

	if !f.loaded {
		return nil
	}

	handle, err := f.fsys.Create(f.path.String())
	if err != nil {
		return errors.Wrapf(err, errors.CodeIOFailure, "failed to create %s", f.path)
	}
	for _, chunk := range f.chunks {
		if _, err := handle.Write(chunk); err != nil {
			_ = handle.Close()
			return errors.Wrapf(err, errors.CodeIOFailure, "failed to write %s", f.path)
		}
	}
	if err := handle.Close(); err != nil {
		return errors.Wrapf(err, errors.CodeIOFailure, "failed to close %s", f.path)
	}
	return nil
}

// Compare compares this file with another.
//
// Two entities with the same path match immediately, with no I/O.
// Otherwise both sides must have been loaded: the verdict is Mismatch if
// chunk counts differ or any chunk pair differs byte-for-byte, Match if
// every chunk pair is identical, and Indeterminate when content is not
// loaded on both sides.
func (f *File) Compare(other *File) (Verdict, error) {
	if f.path.String() == other.path.String() {
		return VerdictMatch, nil
	}
	if !f.loaded || !other.loaded {
		return VerdictIndeterminate, nil
	}
	return compareChunks(f.chunks, other.chunks), nil
}

// compareChunks reports whether two loaded chunk lists are identical in
// count and content.
func compareChunks(a, b [][]byte) Verdict {
	if len(a) != len(b) {
		return VerdictMismatch
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return VerdictMismatch
		}
	}
	return VerdictMatch
}
