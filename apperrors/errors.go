// Package apperrors defines the typed failure taxonomy shared by every layer.
// Each layer returns one of these rather than raising to an unrelated handler;
// callers unwrap with errors.As at the HTTP boundary.
package apperrors

import "fmt"

// ExtractionReason identifies why text extraction failed.
type ExtractionReason string

const (
	ExtractionUnsupportedType ExtractionReason = "unsupported-type"
	ExtractionCorruptPDF      ExtractionReason = "corrupt-or-unsupported-pdf"
	ExtractionCorruptDOCX     ExtractionReason = "corrupt-docx"
	ExtractionBadEncoding     ExtractionReason = "invalid-encoding"
	ExtractionEmptyResult     ExtractionReason = "empty-result"
)

// ExtractionError reports a failed file-to-text conversion.
type ExtractionError struct {
	Reason ExtractionReason
	cause  error
}

func NewExtractionError(reason ExtractionReason, cause error) *ExtractionError {
	return &ExtractionError{Reason: reason, cause: cause}
}

func (e *ExtractionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("extraction failed (%s): %v", e.Reason, e.cause)
	}
	return fmt.Sprintf("extraction failed (%s)", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.cause }

// AIErrorKind identifies how a model invocation failed.
type AIErrorKind string

const (
	AIModelUnavailable AIErrorKind = "model-unavailable"
	AIMalformedOutput  AIErrorKind = "malformed-output"
	AITimeout          AIErrorKind = "timeout"
)

// AIError reports a failed model invocation. No retry is attempted anywhere;
// the first AIError propagates to the caller as-is.
type AIError struct {
	Kind  AIErrorKind
	cause error
}

func NewAIError(kind AIErrorKind, cause error) *AIError {
	return &AIError{Kind: kind, cause: cause}
}

func (e *AIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("ai call failed (%s): %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("ai call failed (%s)", e.Kind)
}

func (e *AIError) Unwrap() error { return e.cause }

// StoreErrorKind identifies how a store operation failed.
type StoreErrorKind string

const StoreUnavailable StoreErrorKind = "unavailable"

// StoreError reports a failed append or feed read against the source store.
type StoreError struct {
	Kind  StoreErrorKind
	cause error
}

func NewStoreError(kind StoreErrorKind, cause error) *StoreError {
	return &StoreError{Kind: kind, cause: cause}
}

func (e *StoreError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("store %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("store %s", e.Kind)
}

func (e *StoreError) Unwrap() error { return e.cause }

// ValidationReason identifies why a request was rejected before any work ran.
type ValidationReason string

const (
	ValidationMissingField ValidationReason = "missing-field"
	ValidationInvalidEnum  ValidationReason = "invalid-enum"
)

// ValidationError reports a precondition failure. It is always raised before
// any model call or store write.
type ValidationError struct {
	Field  string
	Reason ValidationReason
}

func NewValidationError(field string, reason ValidationReason) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request (%s): %s", e.Reason, e.Field)
}
