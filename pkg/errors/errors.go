package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Rule file errors
	ErrDirectiveSyntax ErrorCode = "DIRECTIVE_SYNTAX"
	ErrStructural      ErrorCode = "STRUCTURAL"
	ErrIncludeRead     ErrorCode = "INCLUDE_READ"

	// Patch errors
	ErrAnchorNotFound ErrorCode = "ANCHOR_NOT_FOUND"
	ErrConflict       ErrorCode = "CONFLICT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrEncoding  ErrorCode = "ENCODING"
)

// Detail keys shared by the engine packages.
const (
	DetailStartIndex = "start_index"
	DetailSearchTerm = "search_term"
	DetailIndex      = "index"
	DetailFirst      = "first"
	DetailSecond     = "second"
	DetailPath       = "path"
	DetailMod        = "mod"
)

// ModtextError represents a structured error with code, location and details.
//
// Line and Column are 1-based. A zero Line means the error is not tied to a
// line; a zero Column means it refers to the whole line.
type ModtextError struct {
	Code    ErrorCode
	Message string
	Path    string
	Line    int
	Column  int
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModtextError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", e.Code)
	if loc := e.Location(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Wrapped != nil {
		fmt.Fprintf(&b, ": %v", e.Wrapped)
	}
	return b.String()
}

// Location renders path:line:column, omitting the parts that are unknown.
func (e *ModtextError) Location() string {
	parts := make([]string, 0, 3)
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("%d", e.Line))
		if e.Column > 0 {
			parts = append(parts, fmt.Sprintf("%d", e.Column))
		}
	}
	return strings.Join(parts, ":")
}

// Unwrap implements the errors.Unwrap interface
func (e *ModtextError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModtextError) Is(target error) bool {
	var targetErr *ModtextError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModtextError with the given code and message
func New(code ErrorCode, message string) *ModtextError {
	return &ModtextError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModtextError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModtextError {
	return &ModtextError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModtextError
func Wrap(err error, code ErrorCode, message string) *ModtextError {
	if err == nil {
		return nil
	}
	return &ModtextError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModtextError {
	if err == nil {
		return nil
	}
	return &ModtextError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// At sets the line and column of the error
func (e *ModtextError) At(line, column int) *ModtextError {
	e.Line = line
	e.Column = column
	return e
}

// InFile sets the path the error location refers to
func (e *ModtextError) InFile(path string) *ModtextError {
	e.Path = path
	return e
}

// WithDetail adds a detail to the error
func (e *ModtextError) WithDetail(key string, value interface{}) *ModtextError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ModtextError) WithDetails(details map[string]interface{}) *ModtextError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithPath stamps path on err when it is a ModtextError without a path yet.
// Any other error is returned unchanged.
func WithPath(err error, path string) error {
	var modErr *ModtextError
	if errors.As(err, &modErr) && modErr.Path == "" {
		modErr.Path = path
	}
	return err
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var modErr *ModtextError
	if errors.As(err, &modErr) {
		return modErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModtextError
func GetErrorCode(err error) ErrorCode {
	var modErr *ModtextError
	if errors.As(err, &modErr) {
		return modErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ModtextError
func GetErrorDetails(err error) map[string]interface{} {
	var modErr *ModtextError
	if errors.As(err, &modErr) {
		return modErr.Details
	}
	return nil
}

// Description is the serializable form of an error
type Description struct {
	Error   string                 `json:"error" yaml:"error"`
	Code    ErrorCode              `json:"code,omitempty" yaml:"code,omitempty"`
	Path    string                 `json:"path,omitempty" yaml:"path,omitempty"`
	Line    int                    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int                    `json:"column,omitempty" yaml:"column,omitempty"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// Describe flattens err for machine-readable output
func Describe(err error) Description {
	var modErr *ModtextError
	if !errors.As(err, &modErr) {
		return Description{Error: err.Error()}
	}
	desc := Description{
		Error:  modErr.Message,
		Code:   modErr.Code,
		Path:   modErr.Path,
		Line:   modErr.Line,
		Column: modErr.Column,
	}
	if modErr.Wrapped != nil {
		desc.Error += ": " + modErr.Wrapped.Error()
	}
	if len(modErr.Details) > 0 {
		desc.Details = modErr.Details
	}
	return desc
}
