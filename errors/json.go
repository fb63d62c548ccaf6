package errors

import (
	"encoding/json"
)

// ErrorResponse is the flat, serializable representation of an error.
// It is what the console/logging collaborator consumes: a code, a
// human-readable message, and a severity-style classification. The wrapped
// error chain is intentionally excluded to avoid leaking internal paths.
type ErrorResponse struct {
	// Code is the error code identifying the type of error.
	Code string `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Classification indicates whether the error is retryable or permanent.
	Classification string `json:"classification"`

	// Context contains optional metadata about the error.
	// Omitted from JSON if empty.
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse suitable for serialization.
// Returns nil if err is nil.
//
// For CodedError instances, extracts code, message, classification, and
// context. For standard errors, uses CodeUnknown, ClassificationPermanent,
// and the error message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	code := GetCode(err)
	classification := GetClassification(err)

	message := err.Error()
	var context map[string]interface{}

	var coded CodedError
	if As(err, &coded) {
		message = coded.Message()
		context = coded.Context()
	}

	return &ErrorResponse{
		Code:           string(code),
		Message:        message,
		Classification: string(classification),
		Context:        context,
	}
}

// MarshalJSON implements json.Marshaler so a CodedError can be marshaled
// directly with json.Marshal without calling ToJSON explicitly.
func (e *codedError) MarshalJSON() ([]byte, error) {
	response := &ErrorResponse{
		Code:           string(e.code),
		Message:        e.message,
		Classification: string(e.classification),
		Context:        e.context,
	}
	data, err := json.Marshal(response)
	if err != nil {
		return nil, &codedError{
			code:           CodeInternal,
			classification: ClassificationPermanent,
			message:        "failed to marshal error response",
			cause:          err,
		}
	}
	return data, nil
}
