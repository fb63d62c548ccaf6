// Package errors provides structured error handling for pineutils.
//
// This package extends Go's standard error handling with error codes,
// classification (retryable vs permanent), context metadata, and JSON
// serialization. It maintains full compatibility with the standard library
// errors package (errors.Is, errors.As, errors.Unwrap).
//
// # Error Codes
//
// Error codes follow the failure taxonomy of the filesystem core:
//
//   - I/O errors: CodeIOFailure (open/read/write/rename failed at the OS level)
//   - Format errors: CodeInvalidFormat, CodeNoMetadata
//   - Archive errors: CodeArchiveFailure
//   - In-memory addressing errors: CodeOutOfRange
//   - Generic: CodeNotFound, CodeInvalidInput, CodeUnsupported, CodeInternal, CodeUnknown
//
// # Quick Start
//
// Creating errors:
//
//	err := errors.New(errors.CodeNoMetadata, "APP1 segment not present")
//
// Wrapping errors:
//
//	f, err := fsys.Open(name)
//	if err != nil {
//	    return errors.Wrapf(err, errors.CodeIOFailure, "failed to open %s", name)
//	}
//
// Adding context:
//
//	err = errors.WithContext(err, "path", p.String())
//
// The JSON form produced by ToJSON carries code, message, and classification
// only. That is the exact surface the console/logging collaborator consumes;
// wrapped error chains are intentionally excluded.
package errors
