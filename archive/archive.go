package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"

	"github.com/plaraje/pineutils/billy"
	"github.com/plaraje/pineutils/core"
	"github.com/plaraje/pineutils/entity"
	"github.com/plaraje/pineutils/errors"
)

// Compression selects the stream compression wrapped around the tar
// container.
type Compression int

const (
	// CompressionGzip is the default gzip stream compression.
	CompressionGzip Compression = iota
	// CompressionLZ4 selects lz4 frame compression.
	CompressionLZ4
)

// String returns a string representation of the Compression.
func (c Compression) String() string {
	switch c {
	case CompressionLZ4:
		return "lz4"
	default:
		return "gzip"
	}
}

// Codec packs entities into compressed tar archives and unpacks them. It
// is bound to one filesystem for both archive and entry I/O.
type Codec struct {
	fs          core.FS
	compression Compression
}

// Option configures a Codec.
type Option func(*Codec)

// WithCompression selects the archive's stream compression.
func WithCompression(c Compression) Option {
	return func(codec *Codec) {
		codec.compression = c
	}
}

// NewCodec creates a codec bound to the provided filesystem. A nil fsys
// defaults to the local disk provider.
func NewCodec(fsys core.FS, opts ...Option) *Codec {
	if fsys == nil {
		fsys = billy.NewLocal()
	}
	codec := &Codec{fs: fsys, compression: CompressionGzip}
	for _, opt := range opts {
		opt(codec)
	}
	return codec
}

// Compress packs the given entities into a compressed tar archive at dest.
//
// A file entity is stored at the archive root under its bare filename. A
// directory entity contributes every file in its recursive walk, named
// relative to the directory's parent. Entry content is read from disk, not
// from any loaded chunks.
//
// A missing source fails with ARCHIVE_FAILURE; the operation is best
// effort, so entries written before the failure remain in the partially
// written archive.
func (c *Codec) Compress(nodes []entity.Node, dest string) error {
	out, err := c.fs.Create(dest)
	if err != nil {
		return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to create archive %s", dest)
	}
	defer out.Close()

	compressor := c.newCompressor(out)
	defer compressor.Close()

	tw := tar.NewWriter(compressor)
	defer tw.Close()

	for _, node := range nodes {
		switch n := node.(type) {
		case *entity.File:
			if err := c.addFile(tw, n.Path().String(), n.Name()); err != nil {
				return err
			}
		case *entity.Directory:
			if err := c.addDirectory(tw, n); err != nil {
				return err
			}
		default:
			return errors.Newf(errors.CodeArchiveFailure, "unsupported entry %s", node.Path())
		}
	}
	return nil
}

// addDirectory walks dir and stores each contained file relative to dir's
// parent, so the directory's own name prefixes every entry.
func (c *Codec) addDirectory(tw *tar.Writer, dir *entity.Directory) error {
	base := dir.Path().Parent().String()
	for node, err := range dir.Iterate() {
		if err != nil {
			return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to walk %s", dir.Path())
		}
		if node.Kind() != entity.KindFile {
			continue
		}
		if err := c.addFile(tw, node.Path().String(), relativeTo(base, node.Path().String())); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) addFile(tw *tar.Writer, path, name string) error {
	info, err := c.fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to stat %s", path)
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to build header for %s", path)
	}
	header.Name = filepath.ToSlash(name)
	if err := tw.WriteHeader(header); err != nil {
		return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to write header for %s", path)
	}

	src, err := c.fs.Open(path)
	if err != nil {
		return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to open %s", path)
	}
	defer src.Close()

	if _, err := io.Copy(tw, src); err != nil {
		return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to archive %s", path)
	}
	return nil
}

// Decompress extracts every entry of the archive at src into dest,
// recreating the relative directory structure. It fails with
// ARCHIVE_FAILURE on a corrupt archive, an unwritable destination, or an
// entry whose name escapes the destination.
func (c *Codec) Decompress(src, dest string) error {
	in, err := c.fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to open archive %s", src)
	}
	defer in.Close()

	decompressor, err := c.newDecompressor(in)
	if err != nil {
		return errors.Wrapf(err, errors.CodeArchiveFailure, "corrupt archive %s", src)
	}
	if closer, ok := decompressor.(io.Closer); ok {
		defer closer.Close()
	}

	if err := c.fs.MkdirAll(dest, 0o755); err != nil {
		return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to create destination %s", dest)
	}

	tr := tar.NewReader(decompressor)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, errors.CodeArchiveFailure, "corrupt archive %s", src)
		}
		if err := c.extractEntry(tr, header, dest); err != nil {
			return err
		}
	}
}

func (c *Codec) extractEntry(tr *tar.Reader, header *tar.Header, dest string) error {
	target, err := safeJoin(dest, header.Name)
	if err != nil {
		return err
	}

	switch header.Typeflag {
	case tar.TypeDir:
		if err := c.fs.MkdirAll(target, header.FileInfo().Mode().Perm()); err != nil {
			return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to create directory %s", target)
		}
		return nil

	case tar.TypeReg:
		if dir := filepath.Dir(target); dir != "." {
			if err := c.fs.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to create directory %s", dir)
			}
		}
		out, err := c.fs.Create(target)
		if err != nil {
			return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to create %s", target)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to extract %s", target)
		}
		if err := out.Close(); err != nil {
			return errors.Wrapf(err, errors.CodeArchiveFailure, "failed to close %s", target)
		}
		return nil

	default:
		// Symlinks and special entries are not extracted.
		return nil
	}
}

func (c *Codec) newCompressor(w io.Writer) io.WriteCloser {
	if c.compression == CompressionLZ4 {
		return lz4.NewWriter(w)
	}
	return gzip.NewWriter(w)
}

func (c *Codec) newDecompressor(r io.Reader) (io.Reader, error) {
	if c.compression == CompressionLZ4 {
		return lz4.NewReader(r), nil
	}
	return gzip.NewReader(r)
}

// relativeTo strips base from full, leaving an archive-relative name.
func relativeTo(base, full string) string {
	if base == "" {
		return strings.TrimPrefix(full, "/")
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return strings.TrimPrefix(full, base)
}

// safeJoin joins an archive entry name onto dest and rejects names that
// would escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	if target != filepath.Clean(dest) &&
		!strings.HasPrefix(target, filepath.Clean(dest)+string(filepath.Separator)) {
		return "", errors.Newf(errors.CodeArchiveFailure, "archive entry %s escapes destination", name)
	}
	return target, nil
}
