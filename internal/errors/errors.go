// Package errors provides the error taxonomy shared by the liendesk client.
//
// Three kinds of failure reach the user:
//
//   - Field errors (FieldError, FieldErrors): a required value is missing or
//     a value has the wrong format. They are shown next to the offending
//     field and block wizard progression.
//   - Backend validation errors (BackendValidationError): the backend
//     rejected a request with a structured field→messages map. Only the
//     first message is surfaced.
//   - Everything else (network failures, unexpected statuses): shown as a
//     generic "Something went wrong".
//
// UserMessage maps any error to the text a command prints. No error in this
// package is retried automatically; every failed mutation needs the user to
// act again.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// GenericMessage is shown for errors that carry no user-facing detail.
const GenericMessage = "Something went wrong"

// Wizard sentinel errors
var (
	// ErrStepOutOfRange indicates a step number outside 1..11.
	ErrStepOutOfRange = New("step out of range")
	// ErrStepNotReached indicates a jump to a step the user has not reached yet.
	ErrStepNotReached = New("step not reached yet")
	// ErrStepIncomplete indicates the current step failed its validity gate.
	ErrStepIncomplete = New("step is incomplete")
	// ErrNotAtFinalStep indicates a submission attempted before the info sheet step.
	ErrNotAtFinalStep = New("submission is only possible from the info sheet step")
	// ErrAlreadySubmitted indicates an operation on a wizard that has already submitted.
	ErrAlreadySubmitted = New("wizard already submitted")
	// ErrNoDraft indicates that no draft snapshot exists.
	ErrNoDraft = New("no draft in progress")
	// ErrCorruptDraft indicates a stored draft snapshot that cannot be decoded.
	ErrCorruptDraft = New("corrupt draft snapshot")
)

// Session and transport sentinel errors
var (
	// ErrLoginRequired indicates a missing, expired or rejected bearer token.
	ErrLoginRequired = New("login required")
	// ErrPassphraseRequired indicates the credential store needs a passphrase.
	ErrPassphraseRequired = New("passphrase required (-p or LIENDESK_PASSPHRASE)")
	// ErrWrongPassphrase indicates the credential envelope could not be opened.
	ErrWrongPassphrase = New("wrong passphrase or corrupted session file")
	// ErrNotFound indicates the backend has no such resource.
	ErrNotFound = New("not found")
	// ErrFileTooLarge indicates a file above the client-side upload limit.
	ErrFileTooLarge = New("file too large")
)

// -----------------------------------------------------------------------------
// Field errors
// -----------------------------------------------------------------------------

// FieldError reports a problem with a single input field.
type FieldError struct {
	Field   string
	Message string
}

// Error returns "field: message".
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects the field errors of one form. A nil or empty
// FieldErrors means the form is valid.
type FieldErrors []FieldError

// Add appends a field error.
func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

// Required appends a "is required" error when value is blank.
func (fe *FieldErrors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		fe.Add(field, "is required")
	}
}

// Get returns the first message recorded for field.
func (fe FieldErrors) Get(field string) (string, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// Err returns fe as an error, or nil when it is empty.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Error joins every field error on one line.
func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// Is makes errors.Is(fe, ErrStepIncomplete) hold for a non-empty set.
func (fe FieldErrors) Is(target error) bool {
	return target == ErrStepIncomplete && len(fe) > 0
}

// -----------------------------------------------------------------------------
// Backend validation errors
// -----------------------------------------------------------------------------

// BackendValidationError is a structured rejection from the backend.
type BackendValidationError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

// NewBackendValidationError builds the error from a decoded response body.
func NewBackendValidationError(status int, message string, fields map[string][]string) *BackendValidationError {
	return &BackendValidationError{Status: status, Message: message, Fields: fields}
}

// FirstMessage returns the single message shown to the user: the first
// message of the alphabetically first field, falling back to the top-level
// message.
func (e *BackendValidationError) FirstMessage() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, msg := range e.Fields[k] {
			if strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	}
	if e.Message != "" {
		return e.Message
	}
	return GenericMessage
}

// Error returns the status and first message.
func (e *BackendValidationError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.FirstMessage())
}

// -----------------------------------------------------------------------------
// Transport errors
// -----------------------------------------------------------------------------

// HTTPError records an unexpected response status from the backend.
type HTTPError struct {
	Method string
	Path   string
	Status string
	Code   int
}

// Error returns the request line and status.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %s", strings.ToLower(e.Method), e.Path, e.Status)
}

// Is maps 401 to ErrLoginRequired and 404 to ErrNotFound.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrLoginRequired:
		return e.Code == 401
	case ErrNotFound:
		return e.Code == 404
	}
	return false
}

// FileTooLargeError names the file that exceeded the upload limit.
type FileTooLargeError struct {
	Name  string
	Size  int64
	Limit int64
}

// Error names the file and the limit.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s is too large (%d bytes); the limit is %d MB", e.Name, e.Size, e.Limit/(1<<20))
}

// Is matches ErrFileTooLarge.
func (e *FileTooLargeError) Is(target error) bool { return target == ErrFileTooLarge }

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// UserMessage returns the text shown for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var fe FieldErrors
	if As(err, &fe) && len(fe) > 0 {
		return fe.Error()
	}
	var single FieldError
	if As(err, &single) {
		return single.Error()
	}
	var bv *BackendValidationError
	if As(err, &bv) {
		return bv.FirstMessage()
	}
	var big *FileTooLargeError
	if As(err, &big) {
		return big.Error()
	}
	switch {
	case Is(err, ErrLoginRequired):
		return "Login required: run `liendesk auth login`"
	case Is(err, ErrPassphraseRequired),
		Is(err, ErrWrongPassphrase),
		Is(err, ErrStepNotReached),
		Is(err, ErrStepOutOfRange),
		Is(err, ErrNotAtFinalStep),
		Is(err, ErrAlreadySubmitted),
		Is(err, ErrNoDraft):
		return err.Error()
	}
	return GenericMessage
}

// IsUserFacing reports whether UserMessage would show something more
// specific than the generic message.
func IsUserFacing(err error) bool {
	return err != nil && UserMessage(err) != GenericMessage
}
