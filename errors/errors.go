package errors

// CodedError extends the standard error interface with structured
// information for consistent error handling across the module.
//
// CodedError provides error codes for categorization, classification for
// retry decisions, contextual metadata, and compatibility with standard
// library error handling (errors.Is, errors.As, errors.Unwrap).
type CodedError interface {
	error

	// Code returns the error code identifying the type of error.
	Code() Code

	// Classification returns whether the error is retryable or permanent.
	Classification() Classification

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error for errors.Is and errors.As
	// compatibility. Returns nil if no error is wrapped.
	Unwrap() error
}
