// Package errors defines typed errors for catalog operations so that
// callers can map failures to user-facing responses.
package errors

import (
	"errors"
	"fmt"
)

// CatalogError represents a failure during a catalog operation.
type CatalogError struct {
	Type    string
	Message string
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeValidationFailed     = "VALIDATION_FAILED"
	ErrorTypeDuplicateCode        = "DUPLICATE_CODE"
	ErrorTypeNotFound             = "NOT_FOUND"
	ErrorTypeStorageFailure       = "STORAGE_FAILURE"
	ErrorTypeConfigurationInvalid = "CONFIGURATION_INVALID"
	ErrorTypeMetadataFailure      = "METADATA_FAILURE"
	ErrorTypeAPIKeyMissing        = "API_KEY_MISSING"
	ErrorTypeImportFailed         = "IMPORT_FAILED"
)

// NewCatalogError creates a new CatalogError.
func NewCatalogError(errorType, message string, cause error) *CatalogError {
	return &CatalogError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *CatalogError {
	return NewCatalogError(ErrorTypeValidationFailed, message, nil)
}

// NewDuplicateCodeError reports an already-used catalog code.
func NewDuplicateCodeError(code string) *CatalogError {
	return NewCatalogError(ErrorTypeDuplicateCode, fmt.Sprintf("movie code %q already exists", code), nil)
}

// NewNotFoundError reports a missing record.
func NewNotFoundError(message string) *CatalogError {
	return NewCatalogError(ErrorTypeNotFound, message, nil)
}

// NewStorageError wraps a database failure.
func NewStorageError(message string, cause error) *CatalogError {
	return NewCatalogError(ErrorTypeStorageFailure, message, cause)
}

// NewConfigurationError creates a configuration-related error.
func NewConfigurationError(message string, cause error) *CatalogError {
	return NewCatalogError(ErrorTypeConfigurationInvalid, message, cause)
}

// NewMetadataError wraps an external metadata lookup failure.
func NewMetadataError(message string, cause error) *CatalogError {
	return NewCatalogError(ErrorTypeMetadataFailure, message, cause)
}

// NewAPIKeyMissingError reports a missing API key for a service.
func NewAPIKeyMissingError(service string) *CatalogError {
	return NewCatalogError(ErrorTypeAPIKeyMissing, fmt.Sprintf("API key missing for %s", service), nil)
}

// NewImportError wraps a bulk import failure.
func NewImportError(message string, cause error) *CatalogError {
	return NewCatalogError(ErrorTypeImportFailed, message, cause)
}

// TypeOf returns the CatalogError type string, or "" if err is not a
// CatalogError.
func TypeOf(err error) string {
	var ce *CatalogError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ""
}

// IsNotFound reports whether err is a NOT_FOUND catalog error.
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsDuplicate reports whether err is a DUPLICATE_CODE catalog error.
func IsDuplicate(err error) bool {
	return TypeOf(err) == ErrorTypeDuplicateCode
}

// IsValidation reports whether err is a VALIDATION_FAILED catalog error.
func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidationFailed
}
