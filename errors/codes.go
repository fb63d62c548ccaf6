package errors

// Code identifies a specific error condition.
// Codes are string-based for debuggability and natural JSON serialization.
type Code string

const (
	// I/O errors.

	// CodeIOFailure indicates an open, read, write, or rename failed at the
	// OS level. Surfaced to the caller as-is; never retried automatically.
	CodeIOFailure Code = "IO_FAILURE"

	// Format errors.

	// CodeInvalidFormat indicates bytes do not match an expected binary
	// layout (bad JPEG/TIFF signature, truncated IFD entry). Decoding
	// aborts with no partial result.
	CodeInvalidFormat Code = "INVALID_FORMAT"

	// CodeNoMetadata indicates a well-formed container without the expected
	// metadata segment. Distinct from CodeInvalidFormat so callers can tell
	// "not a JPEG" apart from "JPEG without EXIF".
	CodeNoMetadata Code = "NO_METADATA"

	// Archive errors.

	// CodeArchiveFailure indicates compress/decompress could not complete.
	// The archive may be partially written.
	CodeArchiveFailure Code = "ARCHIVE_FAILURE"

	// Addressing errors.

	// CodeOutOfRange indicates an in-memory write addressed an unloaded file
	// or an invalid chunk/position pair.
	CodeOutOfRange Code = "OUT_OF_RANGE"

	// Resource errors.

	// CodeNotFound indicates a requested file or directory does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// Validation errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput Code = "INVALID_INPUT"

	// System errors.

	// CodeUnsupported indicates the requested operation is not supported by
	// the underlying filesystem provider.
	CodeUnsupported Code = "UNSUPPORTED"

	// CodeInternal indicates an internal error occurred.
	CodeInternal Code = "INTERNAL_ERROR"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown Code = "UNKNOWN"
)
