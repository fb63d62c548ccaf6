package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// Convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// Convenience wrapper around the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the Code from an error.
// Returns CodeUnknown if the error is nil or not a CodedError.
//
// The error chain is traversed; the code of the outermost CodedError wins.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeNoMetadata {
//	    // JPEG without an EXIF segment
//	}
func GetCode(err error) Code {
	if err == nil {
		return CodeUnknown
	}

	var coded CodedError
	if stderrors.As(err, &coded) {
		return coded.Code()
	}

	return CodeUnknown
}

// GetClassification extracts the Classification from an error.
// Returns ClassificationPermanent if the error is nil or not a CodedError,
// which prevents inappropriate retry attempts.
func GetClassification(err error) Classification {
	if err == nil {
		return ClassificationPermanent
	}

	var coded CodedError
	if stderrors.As(err, &coded) {
		return coded.Classification()
	}

	return ClassificationPermanent
}

// IsRetryable returns true if the error is classified as retryable.
// Returns false if the error is nil or not a CodedError.
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
