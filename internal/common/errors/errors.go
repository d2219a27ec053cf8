// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeTrackMismatch         ErrorCode = "TRACK_MISMATCH"

	ErrCodeCatalogUnavailable   ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeCatalogLoadFailed    ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogItemNotFound  ErrorCode = "CATALOG_ITEM_NOT_FOUND"
	ErrCodeCatalogItemExists    ErrorCode = "CATALOG_ITEM_EXISTS"
	ErrCodeCatalogPersistFailed ErrorCode = "CATALOG_PERSIST_FAILED"
	ErrCodeCatalogCacheFailed   ErrorCode = "CATALOG_CACHE_FAILED"

	ErrCodeUnsupportedOperation ErrorCode = "UNSUPPORTED_OPERATION"

	ErrCodeBusinessRuleViolation ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeExternalService       ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout               ErrorCode = "TIMEOUT_ERROR"
	ErrCodeResourceNotFound      ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeAuthentication        ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns e after adding key to its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// AsStandardError finds a StandardError anywhere in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInputValidationError creates a non-retryable error for malformed job variables.
func NewInputValidationError(details string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Input validation failed", details, false, nil)
}

// NewTrackMismatchError wraps a scorer contract violation.
func NewTrackMismatchError(err error) *StandardError {
	return newError(ErrCodeTrackMismatch, "Intent track does not match the requested catalog", err.Error(), false, err)
}

// NewCatalogUnavailableError is returned while no catalog snapshot is loaded.
func NewCatalogUnavailableError(err error) *StandardError {
	return newError(ErrCodeCatalogUnavailable, "Catalog snapshot not loaded", err.Error(), true, err)
}

// NewCatalogLoadFailedError creates a retryable catalog source error.
func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Catalog load failed",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true, err)
}

// NewCatalogItemNotFoundError creates a non-retryable lookup error.
func NewCatalogItemNotFoundError(collection, id string) *StandardError {
	return newError(ErrCodeCatalogItemNotFound, "Catalog item not found",
		fmt.Sprintf("collection: %s, id: %s", collection, id), false, nil)
}

// NewCatalogItemExistsError creates a non-retryable duplicate id error.
func NewCatalogItemExistsError(collection, id string) *StandardError {
	return newError(ErrCodeCatalogItemExists, "Catalog item already exists",
		fmt.Sprintf("collection: %s, id: %s", collection, id), false, nil)
}

// NewCatalogPersistFailedError creates a retryable write-through error.
func NewCatalogPersistFailedError(err error) *StandardError {
	return newError(ErrCodeCatalogPersistFailed, "Catalog persistence failed", err.Error(), true, err)
}

// NewUnsupportedOperationError creates a non-retryable error for unknown operations.
func NewUnsupportedOperationError(operation string) *StandardError {
	return newError(ErrCodeUnsupportedOperation, "Unsupported operation",
		fmt.Sprintf("operation: %s", operation), false, nil)
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return newError(ErrCodeBusinessRuleViolation, message, details, false, nil)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true, err)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true, err)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeResourceNotFound, fmt.Sprintf("Resource not found in %s", service), details, false, nil)
}

func NewAuthenticationError(details string) *StandardError {
	return newError(ErrCodeAuthentication, "Authentication failed", details, false, nil)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes modelled on
// BPMN boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInputValidationFailed: "INPUT_VALIDATION_FAILED",
	ErrCodeTrackMismatch:         "TRACK_MISMATCH",
	ErrCodeCatalogUnavailable:    "CATALOG_UNAVAILABLE",
	ErrCodeCatalogLoadFailed:     "CATALOG_LOAD_FAILED",
	ErrCodeCatalogItemNotFound:   "CATALOG_ITEM_NOT_FOUND",
	ErrCodeCatalogItemExists:     "CATALOG_ITEM_EXISTS",
	ErrCodeCatalogPersistFailed:  "CATALOG_PERSIST_FAILED",
	ErrCodeCatalogCacheFailed:    "CATALOG_CACHE_FAILED",
	ErrCodeUnsupportedOperation:  "UNSUPPORTED_OPERATION",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogLoadFailed,
		ErrCodeCatalogPersistFailed,
		ErrCodeCatalogCacheFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeCatalogUnavailable,
		ErrCodeTimeout:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "TRACK"):
		return "MATCHING"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "UNSUPPORTED"):
		return "VALIDATION"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT"):
		return "INTEGRATION"
	case strings.Contains(codeStr, "AUTHENTICATION"):
		return "AUTH"
	default:
		return "OTHER"
	}
}
