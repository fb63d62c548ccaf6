package errors

// Classification indicates whether an error may succeed on retry.
// Callers use this for retry decisions; the core itself never retries.
type Classification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed
	// on retry, such as transient OS-level I/O errors.
	ClassificationRetryable Classification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on
	// retry, such as malformed input or out-of-range addressing.
	ClassificationPermanent Classification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry may succeed.
func (c Classification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[Code]Classification{
	// Transient by nature: the OS-level condition may clear.
	CodeIOFailure: ClassificationRetryable,

	// Permanent: the bytes or the request will not improve on retry.
	CodeInvalidFormat:  ClassificationPermanent,
	CodeNoMetadata:     ClassificationPermanent,
	CodeArchiveFailure: ClassificationPermanent,
	CodeOutOfRange:     ClassificationPermanent,
	CodeNotFound:       ClassificationPermanent,
	CodeInvalidInput:   ClassificationPermanent,
	CodeUnsupported:    ClassificationPermanent,
	CodeInternal:       ClassificationPermanent,
	CodeUnknown:        ClassificationPermanent,
}

// getDefaultClassification returns the default classification for a code.
// Unknown codes classify as permanent, which is the safe default.
func getDefaultClassification(code Code) Classification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
