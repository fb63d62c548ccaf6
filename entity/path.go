package entity

import (
	"path/filepath"
	"strings"
)

// Path is an immutable path value with derived properties.
// It owns no filesystem resources and performs no I/O; malformed input
// simply produces empty derived fields rather than errors.
type Path struct {
	raw string
}

// NewPath creates a Path from a raw path string.
func NewPath(raw string) Path {
	return Path{raw: raw}
}

// String returns the raw path string.
func (p Path) String() string {
	return p.raw
}

// IsZero reports whether the path is empty.
func (p Path) IsZero() bool {
	return p.raw == ""
}

// Filename returns the final path component.
// Empty for a zero path.
func (p Path) Filename() string {
	if p.raw == "" {
		return ""
	}
	return filepath.Base(p.raw)
}

// Ext returns the file extension including the leading dot, or "" if the
// final component has none.
func (p Path) Ext() string {
	if p.raw == "" {
		return ""
	}
	return filepath.Ext(p.raw)
}

// Name returns the last directory component, i.e. the name of the
// directory containing the final path component.
func (p Path) Name() string {
	parent := p.Parent()
	if parent.IsZero() {
		return ""
	}
	return parent.Filename()
}

// Parent returns the path one level up.
// Bare names and root paths have no parent; the zero path is returned.
func (p Path) Parent() Path {
	if p.raw == "" || !strings.ContainsAny(p.raw, `/\`) {
		return Path{}
	}
	dir := filepath.Dir(p.raw)
	if dir == p.raw {
		// Root paths are their own parent in filepath.Dir; report none.
		return Path{}
	}
	return Path{raw: dir}
}

// Volume returns the leading volume name (drive letter on Windows), or ""
// if the path carries none.
func (p Path) Volume() string {
	return filepath.VolumeName(p.raw)
}

// Join returns the path extended by one or more components.
func (p Path) Join(elem ...string) Path {
	parts := append([]string{p.raw}, elem...)
	return Path{raw: filepath.Join(parts...)}
}
