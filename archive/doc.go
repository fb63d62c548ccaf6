// Package archive packs file and directory entities into compressed tar
// archives and unpacks archives into a destination directory.
//
// File entries are stored at the archive root under their bare filename.
// Directory entries contribute one entry per contained file, named
// relative to the directory's parent so the directory's own name is
// preserved as a path prefix inside the archive. Compression defaults to
// gzip with lz4 as an alternative.
package archive
