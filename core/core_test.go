package core

import (
	"errors"
	"io/fs"
	"testing"
)

func TestFSType_String(t *testing.T) {
	tests := []struct {
		name string
		t    FSType
		want string
	}{
		{"unknown", FSTypeUnknown, "unknown"},
		{"local", FSTypeLocal, "local"},
		{"memory", FSTypeMemory, "memory"},
		{"out of range", FSType(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrors_ReExports(t *testing.T) {
	if !errors.Is(ErrNotExist, fs.ErrNotExist) {
		t.Error("ErrNotExist should match fs.ErrNotExist")
	}
	if !errors.Is(ErrExist, fs.ErrExist) {
		t.Error("ErrExist should match fs.ErrExist")
	}
	if !errors.Is(ErrPermission, fs.ErrPermission) {
		t.Error("ErrPermission should match fs.ErrPermission")
	}
	if !errors.Is(ErrClosed, fs.ErrClosed) {
		t.Error("ErrClosed should match fs.ErrClosed")
	}
}

func TestErrUnsupported_Distinct(t *testing.T) {
	for _, target := range []error{fs.ErrNotExist, fs.ErrExist, fs.ErrPermission} {
		if errors.Is(ErrUnsupported, target) {
			t.Errorf("ErrUnsupported should not match %v", target)
		}
	}
}
