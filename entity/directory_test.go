package entity

import (
	"encoding/binary"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaraje/pineutils/billy"
	"github.com/plaraje/pineutils/core"
	"github.com/plaraje/pineutils/errors"
)

// seedTree writes a small fixture tree used by several tests.
func seedTree(t *testing.T, fsys core.FS, root string) {
	t.Helper()
	files := map[string]string{
		root + "/notes.txt":        "some notes",
		root + "/report.doc":       "a report",
		root + "/sub/data.bin":     "binary data",
		root + "/sub/deep/leaf.md": "leaf",
	}
	for name, content := range files {
		require.NoError(t, fsys.WriteFile(name, []byte(content), 0o644))
	}
}

func collectPaths(t *testing.T, d *Directory) []string {
	t.Helper()
	var paths []string
	for node, err := range d.Iterate() {
		require.NoError(t, err)
		paths = append(paths, node.Path().String())
	}
	sort.Strings(paths)
	return paths
}

func TestDirectory_Open(t *testing.T) {
	fsys := billy.NewMemory()
	seedTree(t, fsys, "/tree")

	d := NewDirectory(fsys, "/tree")
	require.Nil(t, d.Children())

	children, err := d.Open()
	require.NoError(t, err)
	require.Len(t, children, 6)
	assert.Equal(t, children, d.Children())

	kinds := map[string]Kind{}
	for _, node := range children {
		kinds[node.Path().String()] = node.Kind()
	}
	assert.Equal(t, KindFile, kinds["/tree/notes.txt"])
	assert.Equal(t, KindFile, kinds["/tree/sub/data.bin"])
	assert.Equal(t, KindDirectory, kinds["/tree/sub"])
	assert.Equal(t, KindDirectory, kinds["/tree/sub/deep"])
}

func TestDirectory_Open_SnapshotNotLive(t *testing.T) {
	fsys := billy.NewMemory()
	seedTree(t, fsys, "/tree")

	d := NewDirectory(fsys, "/tree")
	children, err := d.Open()
	require.NoError(t, err)
	before := len(children)

	// The snapshot does not track later filesystem changes.
	require.NoError(t, fsys.WriteFile("/tree/added.txt", []byte("x"), 0o644))
	assert.Len(t, d.Children(), before)
}

func TestDirectory_Open_MissingRoot(t *testing.T) {
	fsys := billy.NewMemory()

	d := NewDirectory(fsys, "/nowhere")
	_, err := d.Open()
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOFailure, errors.GetCode(err))
}

func TestDirectory_Iterate(t *testing.T) {
	fsys := billy.NewMemory()
	seedTree(t, fsys, "/tree")

	d := NewDirectory(fsys, "/tree")
	paths := collectPaths(t, d)

	assert.Equal(t, []string{
		"/tree/notes.txt",
		"/tree/report.doc",
		"/tree/sub",
		"/tree/sub/data.bin",
		"/tree/sub/deep",
		"/tree/sub/deep/leaf.md",
	}, paths)

	// Iterate retains nothing on the entity.
	assert.Nil(t, d.Children())
}

func TestDirectory_Iterate_EarlyBreak(t *testing.T) {
	fsys := billy.NewMemory()
	seedTree(t, fsys, "/tree")

	d := NewDirectory(fsys, "/tree")
	var count int
	for _, err := range d.Iterate() {
		require.NoError(t, err)
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestDirectory_Find(t *testing.T) {
	fsys := billy.NewMemory()
	seedTree(t, fsys, "/tree")

	d := NewDirectory(fsys, "/tree")

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "star extension",
			pattern: "*.txt",
			want:    []string{"/tree/notes.txt"},
		},
		{
			name:    "question mark",
			pattern: "dat?.bin",
			want:    []string{"/tree/sub/data.bin"},
		},
		{
			name:    "directory name",
			pattern: "de*",
			want:    []string{"/tree/sub/deep"},
		},
		{
			name:    "no matches",
			pattern: "*.jpg",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for node, err := range d.Find(tt.pattern) {
				require.NoError(t, err)
				got = append(got, node.Path().String())
			}
			sort.Strings(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectory_Find_GlobSemantics(t *testing.T) {
	fsys := billy.NewMemory()
	for _, name := range []string{
		"/logs/file1.log",
		"/logs/file12.log",
		"/logs/notes.txt",
		"/logs/notes.doc",
	} {
		require.NoError(t, fsys.WriteFile(name, []byte("x"), 0o644))
	}

	d := NewDirectory(fsys, "/logs")

	matches := func(pattern string) []string {
		var got []string
		for node, err := range d.Find(pattern) {
			require.NoError(t, err)
			got = append(got, node.Name())
		}
		sort.Strings(got)
		return got
	}

	// '*' spans any run; '?' is exactly one character.
	assert.Equal(t, []string{"notes.txt"}, matches("*.txt"))
	assert.Equal(t, []string{"file1.log"}, matches("file?.log"))
	assert.Equal(t, []string{"file1.log", "file12.log"}, matches("file*.log"))

	// Patterns are anchored at the end of the name only, so a bare
	// suffix matches without a leading wildcard.
	assert.Equal(t, []string{"notes.txt"}, matches("otes.txt"))
}

func TestDirectory_Iterate_SymlinkCycleTerminates(t *testing.T) {
	fsys := billy.NewLocal()
	root := t.TempDir()
	require.NoError(t, fsys.WriteFile(root+"/a.txt", []byte("a"), 0o644))
	require.NoError(t, fsys.MkdirAll(root+"/sub", 0o755))
	require.NoError(t, fsys.Symlink(root, root+"/sub/loop"))

	d := NewDirectory(fsys, root)
	kinds := map[string]Kind{}
	for node, err := range d.Iterate() {
		require.NoError(t, err)
		kinds[node.Path().String()] = node.Kind()
	}

	// The link back to the root is yielded as a leaf and never followed,
	// so the walk terminates at exactly three nodes.
	assert.Equal(t, map[string]Kind{
		root + "/a.txt":    KindFile,
		root + "/sub":      KindDirectory,
		root + "/sub/loop": KindFile,
	}, kinds)
}

func TestDirectory_Iterate_SkipsUnreadableSubdir(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions do not bind root")
	}
	fsys := billy.NewLocal()
	root := t.TempDir()
	require.NoError(t, fsys.WriteFile(root+"/a.txt", []byte("a"), 0o644))
	require.NoError(t, fsys.WriteFile(root+"/locked/hidden.txt", []byte("h"), 0o644))
	require.NoError(t, os.Chmod(root+"/locked", 0o000))
	t.Cleanup(func() { _ = os.Chmod(root+"/locked", 0o755) })

	d := NewDirectory(fsys, root)
	var paths []string
	for node, err := range d.Iterate() {
		require.NoError(t, err)
		paths = append(paths, node.Path().String())
	}

	// The unreadable subdirectory is reported but not descended into.
	assert.ElementsMatch(t, []string{root + "/a.txt", root + "/locked"}, paths)
}

func TestDirectory_StagedRename(t *testing.T) {
	fsys := billy.NewMemory()
	seedTree(t, fsys, "/old-name")

	d := NewDirectory(fsys, "/old-name")
	d.Rename("new-name")
	assert.Equal(t, "/old-name", d.Path().String())

	require.NoError(t, d.Save())
	assert.Equal(t, "/new-name", d.Path().String())

	exists, err := fsys.Exists("/new-name/notes.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDirectory_Save_NoStagedRename(t *testing.T) {
	fsys := billy.NewMemory()
	d := NewDirectory(fsys, "/whatever")
	require.NoError(t, d.Save())
}

func TestDirectory_StagedRename_FailureKeepsPath(t *testing.T) {
	fsys := billy.NewMemory()

	d := NewDirectory(fsys, "/ghost")
	d.Rename("renamed")

	err := d.Save()
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOFailure, errors.GetCode(err))
	assert.Equal(t, "/ghost", d.Path().String())
}

func TestDirectory_Compare_Identical(t *testing.T) {
	fsys := billy.NewMemory()
	seedTree(t, fsys, "/a")
	seedTree(t, fsys, "/b")

	a := NewDirectory(fsys, "/a")
	b := NewDirectory(fsys, "/b")

	same, err := a.Compare(b)
	require.NoError(t, err)
	assert.True(t, same)

	// Symmetric.
	same, err = b.Compare(a)
	require.NoError(t, err)
	assert.True(t, same)
}

func TestDirectory_Compare_ContentMismatch(t *testing.T) {
	fsys := billy.NewMemory()
	seedTree(t, fsys, "/a")
	seedTree(t, fsys, "/b")
	require.NoError(t, fsys.WriteFile("/b/sub/data.bin", []byte("binary dat4"), 0o644))

	a := NewDirectory(fsys, "/a")
	b := NewDirectory(fsys, "/b")

	same, err := a.Compare(b)
	require.NoError(t, err)
	assert.False(t, same)

	same, err = b.Compare(a)
	require.NoError(t, err)
	assert.False(t, same)
}

func TestDirectory_Compare_StructuralMismatch(t *testing.T) {
	fsys := billy.NewMemory()
	seedTree(t, fsys, "/a")
	seedTree(t, fsys, "/b")
	require.NoError(t, fsys.WriteFile("/b/extra.txt", []byte("x"), 0o644))

	a := NewDirectory(fsys, "/a")
	b := NewDirectory(fsys, "/b")

	// The extra entry must be caught regardless of comparison direction.
	same, err := a.Compare(b)
	require.NoError(t, err)
	assert.False(t, same)

	same, err = b.Compare(a)
	require.NoError(t, err)
	assert.False(t, same)
}

func TestDirectory_Compare_KindMismatch(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("/a/entry", []byte("file"), 0o644))
	require.NoError(t, fsys.MkdirAll("/b/entry", 0o755))

	a := NewDirectory(fsys, "/a")
	b := NewDirectory(fsys, "/b")

	same, err := a.Compare(b)
	require.NoError(t, err)
	assert.False(t, same)
}

func TestDirectory_Compare_AcrossFilesystems(t *testing.T) {
	disk := billy.NewMemory()
	mem := billy.NewMemory()
	seedTree(t, disk, "/t")
	seedTree(t, mem, "/t")

	a := NewDirectory(disk, "/t")
	b := NewDirectory(mem, "/t")

	// Same path string on different filesystems must still compare content.
	same, err := a.Compare(b)
	require.NoError(t, err)
	assert.True(t, same)

	require.NoError(t, mem.WriteFile("/t/notes.txt", []byte("changed"), 0o644))
	same, err = a.Compare(b)
	require.NoError(t, err)
	assert.False(t, same)
}

// jpegWithASCIITag builds a minimal JPEG whose EXIF block holds one
// big-endian ASCII tag with an inline value of at most three characters.
func jpegWithASCIITag(tag uint16, value string) []byte {
	be := binary.BigEndian
	tiff := []byte{'M', 'M', 0x00, 0x2A}
	tiff = be.AppendUint32(tiff, 8)
	tiff = be.AppendUint16(tiff, 1)
	tiff = be.AppendUint16(tiff, tag)
	tiff = be.AppendUint16(tiff, 2)
	tiff = be.AppendUint32(tiff, uint32(len(value)+1))
	inline := append([]byte(value), 0)
	for len(inline) < 4 {
		inline = append(inline, 0)
	}
	tiff = append(tiff, inline[:4]...)

	payload := append([]byte("Exif\x00\x00"), tiff...)
	buf := []byte{0xFF, 0xD8, 0xFF, 0xE1}
	buf = be.AppendUint16(buf, uint16(len(payload)+2))
	return append(buf, payload...)
}

func TestDirectory_Metadata(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("/album/notes.txt", []byte("n"), 0o644))
	require.NoError(t, fsys.WriteFile("/album/shot.jpg", jpegWithASCIITag(0x010F, "Go"), 0o644))
	require.NoError(t, fsys.WriteFile("/album/sub/raw.JPEG", jpegWithASCIITag(0x0110, "Hi"), 0o644))
	require.NoError(t, fsys.WriteFile("/album/broken.jpg", []byte("not a jpeg"), 0o644))

	d := NewDirectory(fsys, "/album")
	meta, err := d.Metadata()
	require.NoError(t, err)

	assert.Equal(t, "album", meta.Name)
	assert.Equal(t, "/album", meta.Path)
	assert.Equal(t, 5, meta.TotalItems)
	require.Len(t, meta.EXIF, 3)

	shot := meta.EXIF["/album/shot.jpg"]
	require.NoError(t, shot.Err)
	assert.Equal(t, "Go", shot.Tags[0x010F].ASCII)

	// Extension matching is case-insensitive, as in .JPEG.
	raw := meta.EXIF["/album/sub/raw.JPEG"]
	require.NoError(t, raw.Err)
	assert.Equal(t, "Hi", raw.Tags[0x0110].ASCII)

	// A JPEG that fails to decode is captured per file, not fatal.
	broken := meta.EXIF["/album/broken.jpg"]
	require.Error(t, broken.Err)
	assert.Equal(t, errors.CodeInvalidFormat, errors.GetCode(broken.Err))
	assert.Nil(t, broken.Tags)
}

func TestDirectory_Metadata_NoJPEGs(t *testing.T) {
	fsys := billy.NewMemory()
	seedTree(t, fsys, "/tree")

	d := NewDirectory(fsys, "/tree")
	meta, err := d.Metadata()
	require.NoError(t, err)
	assert.Equal(t, 6, meta.TotalItems)
	assert.Empty(t, meta.EXIF)
}

func TestDirectory_Metadata_MissingRoot(t *testing.T) {
	d := NewDirectory(billy.NewMemory(), "/nope")

	_, err := d.Metadata()
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOFailure, errors.GetCode(err))
}

func TestDirectory_Compare_EmptyDirs(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.MkdirAll("/a", 0o755))
	require.NoError(t, fsys.MkdirAll("/b", 0o755))

	a := NewDirectory(fsys, "/a")
	b := NewDirectory(fsys, "/b")

	same, err := a.Compare(b)
	require.NoError(t, err)
	assert.True(t, same)
}
