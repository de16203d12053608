// Package errors provides explicit, human-readable error types for showroom.
// Every error carries a Message that is safe to show inline next to the
// resource that produced it, plus an optional Reason and Suggestion.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ShowroomError is the base error type for all showroom errors.
type ShowroomError struct {
	Code       ErrorCode
	Message    string
	Reason     string
	Suggestion string
	Cause      error
}

// ErrorCode represents the category of error for exit code mapping.
type ErrorCode int

const (
	CodeValidation ErrorCode = 1
	CodeConfig     ErrorCode = 2
	CodeBackend    ErrorCode = 3
	CodeInternal   ErrorCode = 4
)

func (e *ShowroomError) Error() string {
	msg := e.Message
	if e.Reason != "" {
		msg = fmt.Sprintf("%s\nReason: %s", msg, e.Reason)
	}
	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s\nSuggestion: %s", msg, e.Suggestion)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s\nCaused by: %v", msg, e.Cause)
	}
	return msg
}

func (e *ShowroomError) Unwrap() error {
	return e.Cause
}

// base returns the embedded ShowroomError of any showroom error.
func base(err error) (*ShowroomError, bool) {
	type carrier interface{ showroom() *ShowroomError }
	var c carrier
	if stderrors.As(err, &c) {
		return c.showroom(), true
	}
	return nil, false
}

func (e *ShowroomError) showroom() *ShowroomError { return e }

// UserMessage returns the short message recorded in a resource's error state.
// Non-showroom errors fall back to their full text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if se, ok := base(err); ok {
		return se.Message
	}
	return err.Error()
}

// CodeOf returns the error category, CodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	if se, ok := base(err); ok {
		return se.Code
	}
	return CodeInternal
}

// ErrBackendNotConfigured is returned before any request when no backend URL
// is configured.
type ErrBackendNotConfigured struct {
	ShowroomError
}

// NewBackendNotConfigured creates a new ErrBackendNotConfigured.
func NewBackendNotConfigured() *ErrBackendNotConfigured {
	return &ErrBackendNotConfigured{
		ShowroomError: ShowroomError{
			Code:       CodeConfig,
			Message:    "Backend URL not configured.",
			Reason:     "backend.url is empty",
			Suggestion: "set SHOWROOM_BACKEND_URL (or BACKEND_URL in .env) or pass --backend",
		},
	}
}

// ErrTransportFailed is returned when the request never produced a response.
type ErrTransportFailed struct {
	ShowroomError
	URL string
}

// NewTransportFailed creates a new ErrTransportFailed.
func NewTransportFailed(url string, cause error) *ErrTransportFailed {
	return &ErrTransportFailed{
		ShowroomError: ShowroomError{
			Code:       CodeBackend,
			Message:    fmt.Sprintf("network error: %v", cause),
			Reason:     fmt.Sprintf("request to %s failed", url),
			Suggestion: "check that the backend is running with 'showroom doctor'",
			Cause:      cause,
		},
		URL: url,
	}
}

// ErrHTTPStatus is returned for any non-2xx response.
type ErrHTTPStatus struct {
	ShowroomError
	Status int
}

// NewHTTPStatus creates a new ErrHTTPStatus carrying the extracted message.
func NewHTTPStatus(status int, message string) *ErrHTTPStatus {
	return &ErrHTTPStatus{
		ShowroomError: ShowroomError{
			Code:    CodeBackend,
			Message: message,
			Reason:  fmt.Sprintf("backend responded with status %d", status),
		},
		Status: status,
	}
}

// StatusOf returns the HTTP status of err, or 0.
func StatusOf(err error) int {
	var he *ErrHTTPStatus
	if stderrors.As(err, &he) {
		return he.Status
	}
	return 0
}

// ErrDecodeFailed is returned when a 2xx body is not the expected JSON.
type ErrDecodeFailed struct {
	ShowroomError
}

// NewDecodeFailed creates a new ErrDecodeFailed.
func NewDecodeFailed(cause error) *ErrDecodeFailed {
	return &ErrDecodeFailed{
		ShowroomError: ShowroomError{
			Code:    CodeBackend,
			Message: fmt.Sprintf("failed to decode response: %v", cause),
			Cause:   cause,
		},
	}
}

// ErrInvalidForm is returned when a form fails required/type checks.
type ErrInvalidForm struct {
	ShowroomError
	Fields map[string]string
}

// NewInvalidForm creates a new ErrInvalidForm from field -> problem pairs.
func NewInvalidForm(fields map[string]string) *ErrInvalidForm {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, fields[k]))
	}
	return &ErrInvalidForm{
		ShowroomError: ShowroomError{
			Code:    CodeValidation,
			Message: "invalid form: " + strings.Join(parts, ", "),
		},
		Fields: fields,
	}
}

// ErrInvalidSpecifications is returned at submission time when the product
// specifications text is still not valid JSON.
type ErrInvalidSpecifications struct {
	ShowroomError
	Raw string
}

// NewInvalidSpecifications creates a new ErrInvalidSpecifications.
func NewInvalidSpecifications(raw string, cause error) *ErrInvalidSpecifications {
	return &ErrInvalidSpecifications{
		ShowroomError: ShowroomError{
			Code:       CodeValidation,
			Message:    "specifications must be a JSON object of section -> list of {parameter, value}",
			Reason:     fmt.Sprintf("%v", cause),
			Suggestion: `e.g. {"battery": [{"parameter": "Capacity", "value": "40 kWh"}]}`,
			Cause:      cause,
		},
		Raw: raw,
	}
}

// ErrUnknownResource is returned for an unrecognised resource key.
type ErrUnknownResource struct {
	ShowroomError
	Resource string
}

// NewUnknownResource creates a new ErrUnknownResource.
func NewUnknownResource(resource string, known []string) *ErrUnknownResource {
	return &ErrUnknownResource{
		ShowroomError: ShowroomError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("unknown resource: %s", resource),
			Suggestion: fmt.Sprintf("use one of: %s", strings.Join(known, ", ")),
		},
		Resource: resource,
	}
}

// ErrUnknownTab is returned for an unrecognised dashboard tab.
type ErrUnknownTab struct {
	ShowroomError
	Tab string
}

// NewUnknownTab creates a new ErrUnknownTab.
func NewUnknownTab(tab string, known []string) *ErrUnknownTab {
	return &ErrUnknownTab{
		ShowroomError: ShowroomError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("unknown tab: %s", tab),
			Suggestion: fmt.Sprintf("use one of: %s", strings.Join(known, ", ")),
		},
		Tab: tab,
	}
}

// ErrReadOnlyResource is returned when saving a resource the admin can only
// read and delete.
type ErrReadOnlyResource struct {
	ShowroomError
	Resource string
}

// NewReadOnlyResource creates a new ErrReadOnlyResource.
func NewReadOnlyResource(resource string) *ErrReadOnlyResource {
	return &ErrReadOnlyResource{
		ShowroomError: ShowroomError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("%s cannot be created or edited from the admin", resource),
			Reason:     "entries are submitted from the public site",
			Suggestion: fmt.Sprintf("use 'showroom admin %s list' or 'delete'", resource),
		},
		Resource: resource,
	}
}

// ErrNoPendingDeletion is returned when confirming with nothing pending.
type ErrNoPendingDeletion struct {
	ShowroomError
}

// NewNoPendingDeletion creates a new ErrNoPendingDeletion.
func NewNoPendingDeletion() *ErrNoPendingDeletion {
	return &ErrNoPendingDeletion{
		ShowroomError: ShowroomError{
			Code:       CodeValidation,
			Message:    "no deletion pending confirmation",
			Suggestion: "select an item with 'delete <id>' first",
		},
	}
}

// ErrMigrationFailed is returned when an audit schema migration fails.
type ErrMigrationFailed struct {
	ShowroomError
	Migration string
}

// NewMigrationFailed creates a new ErrMigrationFailed.
func NewMigrationFailed(name string, cause error) *ErrMigrationFailed {
	return &ErrMigrationFailed{
		ShowroomError: ShowroomError{
			Code:       CodeInternal,
			Message:    fmt.Sprintf("migration failed: %s", name),
			Reason:     fmt.Sprintf("%v", cause),
			Suggestion: "check audit.dsn and database permissions",
			Cause:      cause,
		},
		Migration: name,
	}
}

// ErrSeedInvalid is returned when a catalog seed file is rejected.
type ErrSeedInvalid struct {
	ShowroomError
	Path string
}

// NewSeedInvalid creates a new ErrSeedInvalid.
func NewSeedInvalid(path, reason string) *ErrSeedInvalid {
	return &ErrSeedInvalid{
		ShowroomError: ShowroomError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("invalid seed file: %s", path),
			Reason:     reason,
			Suggestion: "top-level keys are products, qna, awards, media",
		},
		Path: path,
	}
}

// ErrItemNotFound is returned when an id is not in a resource's current list.
type ErrItemNotFound struct {
	ShowroomError
	Resource string
	ID       int64
}

// NewItemNotFound creates a new ErrItemNotFound.
func NewItemNotFound(resource string, id int64) *ErrItemNotFound {
	return &ErrItemNotFound{
		ShowroomError: ShowroomError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("%s %d not found", resource, id),
			Suggestion: fmt.Sprintf("run 'showroom admin %s list' to see current ids", resource),
		},
		Resource: resource,
		ID:       id,
	}
}

// ErrConfigInvalid is returned when configuration cannot be loaded.
type ErrConfigInvalid struct {
	ShowroomError
}

// NewConfigInvalid creates a new ErrConfigInvalid.
func NewConfigInvalid(cause error) *ErrConfigInvalid {
	return &ErrConfigInvalid{
		ShowroomError: ShowroomError{
			Code:       CodeConfig,
			Message:    "failed to load configuration",
			Suggestion: "check --config, ~/.showroom/config.yaml and SHOWROOM_* variables",
			Cause:      cause,
		},
	}
}
