// Package exif provides a stateless decoder for the EXIF metadata segment
// embedded in JPEG byte streams.
//
// The decoder walks the APP1 segment's TIFF structure directly and returns
// the raw tag identifiers of the first image file directory mapped to their
// decoded values. Tags are not resolved to human-readable names. Decoding
// is all-or-nothing: one malformed entry fails the whole decode and no
// partial map is returned.
package exif
