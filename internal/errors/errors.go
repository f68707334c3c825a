package errors

import "fmt"

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	ErrUsage             ErrorCode = "USAGE"
	ErrTokenNotFound     ErrorCode = "TOKEN_NOT_FOUND"
	ErrMissingManifest   ErrorCode = "MISSING_MANIFEST"
	ErrMalformedManifest ErrorCode = "MALFORMED_MANIFEST"
	ErrNotFound          ErrorCode = "NOT_FOUND"
	ErrNotAFolder        ErrorCode = "NOT_A_FOLDER"
	ErrNoProject         ErrorCode = "NO_PROJECT"
	ErrProjectExists     ErrorCode = "PROJECT_EXISTS"
	ErrInvalidSettings   ErrorCode = "INVALID_SETTINGS"
	ErrFetchFailed       ErrorCode = "FETCH_FAILED"
	ErrInternal          ErrorCode = "INTERNAL"
)

// Error is a structured error with a code and optional details.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUsage creates an error for invalid command-line input.
func NewUsage(msg string) *Error {
	return &Error{
		Code:    ErrUsage,
		Message: msg,
	}
}

// NewTokenNotFound creates an error for when no API token could be resolved.
func NewTokenNotFound() *Error {
	return &Error{
		Code:    ErrTokenNotFound,
		Message: "API token not found",
	}
}

// NewMissingManifest creates an error for an absent manifest file.
func NewMissingManifest(path string) *Error {
	return &Error{
		Code:    ErrMissingManifest,
		Message: fmt.Sprintf("manifest not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewMalformedManifest creates an error for a manifest line that does not
// split into a non-empty id and path.
func NewMalformedManifest(path string, line int) *Error {
	return &Error{
		Code:    ErrMalformedManifest,
		Message: fmt.Sprintf("%s: malformed entry at line %d", path, line),
		Details: map[string]any{"path": path, "line": line},
	}
}

// NewNotFound creates an error for an unknown document or folder ID.
func NewNotFound(id string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("item not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewNotAFolder creates an error for a folder operation on a non-folder item.
func NewNotAFolder(id string) *Error {
	return &Error{
		Code:    ErrNotAFolder,
		Message: fmt.Sprintf("not a folder: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewNoProject creates an error for a project operation outside a project
// directory.
func NewNoProject(path string) *Error {
	return &Error{
		Code:    ErrNoProject,
		Message: fmt.Sprintf("project settings not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewProjectExists creates an error for init in an already-bound directory.
func NewProjectExists(path string) *Error {
	return &Error{
		Code:    ErrProjectExists,
		Message: fmt.Sprintf("project settings already exist: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewInvalidSettings creates an error for an unreadable or incomplete
// settings file.
func NewInvalidSettings(msg string) *Error {
	return &Error{
		Code:    ErrInvalidSettings,
		Message: msg,
	}
}

// NewFetchFailed creates an error for a failed API call.
func NewFetchFailed(method, msg string) *Error {
	return &Error{
		Code:    ErrFetchFailed,
		Message: fmt.Sprintf("%s: %s", method, msg),
		Details: map[string]any{"method": method},
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is an *Error with the given code.
func Is(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}
