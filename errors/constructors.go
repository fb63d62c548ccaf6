package errors

import (
	"errors"
	"fmt"
)

// New creates a new CodedError with the given code and message.
// The classification is determined by the error code's default mapping.
//
// Example:
//
//	err := errors.New(errors.CodeNotFound, "file not found")
func New(code Code, message string) CodedError {
	return &codedError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a new CodedError with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeOutOfRange, "chunk %d outside loaded range", i)
func Newf(code Code, format string, args ...interface{}) CodedError {
	return &codedError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context while preserving the original
// error. The wrapped error is accessible via Unwrap() and compatible with
// errors.Is and errors.As.
//
// If the wrapped error is a CodedError, its classification is preserved.
// Otherwise, the default classification for the code is used.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := fsys.Rename(old, next); err != nil {
//	    return errors.Wrap(err, errors.CodeIOFailure, "rename failed")
//	}
func Wrap(err error, code Code, message string) CodedError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var coded CodedError
	if errors.As(err, &coded) {
		classification = coded.Classification()
	}

	return &codedError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps an error with a formatted message.
//
// Returns nil if err is nil.
func Wrapf(err error, code Code, format string, args ...interface{}) CodedError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithContext adds a single context field to an error.
// Returns a new CodedError with the field added; existing fields are
// preserved. If err is not a CodedError it is converted to one with
// CodeUnknown. Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "path", p.String())
func WithContext(err error, key string, value interface{}) CodedError {
	if err == nil {
		return nil
	}

	var coded CodedError
	if !errors.As(err, &coded) {
		coded = &codedError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        err.Error(),
			cause:          err,
		}
	}

	ctx := make(map[string]interface{})
	for k, v := range coded.Context() {
		ctx[k] = v
	}
	ctx[key] = value

	return &codedError{
		code:           coded.Code(),
		classification: coded.Classification(),
		message:        coded.Message(),
		context:        ctx,
		cause:          coded.Unwrap(),
	}
}
