package fastjs

import (
	"errors"
	"fmt"
	"time"
)

// Error type tags carried by RequestError.
const (
	ErrorTypeNetwork    = "Network"
	ErrorTypeBadStatus  = "BadStatus"
	ErrorTypeHookVeto   = "HookVeto"
	ErrorTypeValidation = "Validation"
)

// Sentinel errors for common failure scenarios.
var (
	// ErrInterrupted is the synthetic cause attached when a lifecycle hook
	// vetoes the pipeline.
	ErrInterrupted = errors.New("fastjs: request interrupted by hook")

	// ErrBadStatus is the cause attached when the status predicate rejects
	// a response.
	ErrBadStatus = errors.New("fastjs: unexpected response status")
)

// StatusError carries the numeric HTTP status of a rejected response. It
// unwraps to ErrBadStatus.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fastjs: unexpected response status %d", e.Code)
}

func (e *StatusError) Unwrap() error { return ErrBadStatus }

// RequestError is the structured error produced by the pipeline. It is
// delivered through FailedParams, never returned to the Send caller.
type RequestError struct {
	Type       string
	Message    string
	Cause      error
	RequestID  string
	Method     string
	URL        string
	Hook       string
	StatusCode int
	Timestamp  time.Time
	Duration   time.Duration
}

// Error implements error interface.
func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	if e.Hook != "" {
		msg = fmt.Sprintf("%s (hook %s)", msg, e.Hook)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *RequestError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*RequestError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *RequestError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.Hook != "" {
		info += fmt.Sprintf("Hook: %s\n", e.Hook)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Duration > 0 {
		info += fmt.Sprintf("Duration: %v\n", e.Duration)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// IsIntercepted reports whether err stems from a lifecycle hook veto.
func IsIntercepted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}

// StatusOf extracts the HTTP status from a bad-status failure, or 0.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
