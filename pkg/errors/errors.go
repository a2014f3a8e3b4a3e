// Package errors defines the categorized error type shared across the
// reconciliation workspace, with codes, suggestions, and context for
// actionable messages.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryFile          ErrorCategory = "file"
	CategoryParse         ErrorCategory = "parse"
	CategoryValidation    ErrorCategory = "validation"
	CategorySelection     ErrorCategory = "selection"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"

	// Parse errors
	CodeInvalidFormat ErrorCode = "invalid_format"
	CodeMissingColumn ErrorCode = "missing_column"
	CodeInvalidData   ErrorCode = "invalid_data"

	// Validation errors
	CodeInvalidAmount ErrorCode = "invalid_amount"
	CodeInvalidDate   ErrorCode = "invalid_date"
	CodeMissingField  ErrorCode = "missing_field"

	// Selection errors (lifecycle operations)
	CodeGroupNotFound      ErrorCode = "group_not_found"
	CodeInvalidSelection   ErrorCode = "invalid_selection"
	CodeUnknownTransaction ErrorCode = "unknown_transaction"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// ReconcileError is the base error type for all application errors
type ReconcileError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *ReconcileError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *ReconcileError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ReconcileError) WithContext(key string, value interface{}) *ReconcileError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ReconcileError) WithSuggestion(suggestion string) *ReconcileError {
	e.Suggestion = suggestion
	return e
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// New creates a new ReconcileError
func New(category ErrorCategory, code ErrorCode, message string) *ReconcileError {
	return &ReconcileError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with ReconcileError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *ReconcileError {
	if err == nil {
		return nil
	}
	return &ReconcileError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// Specific error constructors

// GroupNotFound reports a lifecycle operation referencing a group id that is
// not in the active collection.
func GroupNotFound(groupID string) *ReconcileError {
	return New(CategorySelection, CodeGroupNotFound,
		fmt.Sprintf("match group not found: %s", groupID)).
		WithSuggestion("the group may have been rejected; refresh the group list").
		WithContext("group_id", groupID)
}

// InvalidSelection reports a group create or edit with an empty side.
func InvalidSelection(message string) *ReconcileError {
	return New(CategorySelection, CodeInvalidSelection, message).
		WithSuggestion("select at least one bank and one GL transaction")
}

// UnknownTransaction reports a selection referencing a transaction id that
// is not in the loaded collections.
func UnknownTransaction(side, id string) *ReconcileError {
	return New(CategorySelection, CodeUnknownTransaction,
		fmt.Sprintf("unknown %s transaction: %s", side, id)).
		WithSuggestion("the selection is stale; reload the transaction lists").
		WithContext("side", side).
		WithContext("transaction_id", id)
}

// FileError creates a file-related error
func FileError(code ErrorCode, path string, err error) *ReconcileError {
	var message, suggestion string
	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFilePermission:
		message = fmt.Sprintf("permission denied accessing file: %s", path)
		suggestion = "check file permissions and ensure you have read access"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	result := wrapOrNew(err, CategoryFile, code, message)
	return result.WithSuggestion(suggestion).WithContext("file_path", path)
}

// ParseError creates a parsing-related error
func ParseError(code ErrorCode, file string, line int, column, value string, err error) *ReconcileError {
	var message, suggestion string
	switch code {
	case CodeMissingColumn:
		message = fmt.Sprintf("missing required column '%s' in file %s", column, file)
		suggestion = "verify the column mapping matches the file's headers"
	case CodeInvalidData:
		message = fmt.Sprintf("invalid data in file %s at line %d, column '%s': '%s'", file, line, column, value)
		suggestion = "correct the data format or remove the invalid entry"
	default:
		message = fmt.Sprintf("parse error in file %s at line %d", file, line)
		suggestion = "check the file format and data integrity"
	}

	result := wrapOrNew(err, CategoryParse, code, message)
	return result.WithSuggestion(suggestion).
		WithContext("file", file).
		WithContext("line", line).
		WithContext("column", column)
}

// ValidationError creates a validation-related error
func ValidationError(code ErrorCode, field string, value interface{}, err error) *ReconcileError {
	var message, suggestion string
	switch code {
	case CodeInvalidAmount:
		message = fmt.Sprintf("invalid amount in field '%s': %v", field, value)
		suggestion = "ensure amounts are valid decimal numbers (e.g., '12.34')"
	case CodeInvalidDate:
		message = fmt.Sprintf("invalid date in field '%s': %v", field, value)
		suggestion = "use date format YYYY-MM-DD"
	case CodeMissingField:
		message = fmt.Sprintf("required field '%s' is missing or empty", field)
		suggestion = "provide a value for this required field"
	default:
		message = fmt.Sprintf("validation error in field '%s': %v", field, value)
		suggestion = "check the field value and format"
	}

	result := wrapOrNew(err, CategoryValidation, code, message)
	return result.WithSuggestion(suggestion).
		WithContext("field", field).
		WithContext("value", value)
}

// ConfigurationError creates a configuration-related error
func ConfigurationError(setting string, value interface{}, err error) *ReconcileError {
	message := fmt.Sprintf("invalid configuration for '%s': %v", setting, value)
	result := wrapOrNew(err, CategoryConfiguration, CodeInvalidConfig, message)
	return result.WithSuggestion("check the configuration documentation for valid values").
		WithContext("setting", setting).
		WithContext("value", value)
}

func wrapOrNew(err error, category ErrorCategory, code ErrorCode, message string) *ReconcileError {
	if err != nil {
		return Wrap(err, category, code, message)
	}
	return New(category, code, message)
}

// Utility functions

// IsReconcileError checks if an error is a ReconcileError
func IsReconcileError(err error) bool {
	_, ok := err.(*ReconcileError)
	return ok
}

// AsReconcileError extracts a ReconcileError from an error chain
func AsReconcileError(err error) (*ReconcileError, bool) {
	var reconcileErr *ReconcileError
	if errors.As(err, &reconcileErr) {
		return reconcileErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given error code.
func HasCode(err error, code ErrorCode) bool {
	if reconcileErr, ok := AsReconcileError(err); ok {
		return reconcileErr.Code == code
	}
	return false
}

// IsGroupNotFound reports whether err is a group-not-found condition.
func IsGroupNotFound(err error) bool {
	return HasCode(err, CodeGroupNotFound)
}

// IsInvalidSelection reports whether err is an invalid-selection condition.
func IsInvalidSelection(err error) bool {
	return HasCode(err, CodeInvalidSelection)
}
