package fastjs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestRequestErrorError(t *testing.T) {
	err := &RequestError{Type: ErrorTypeNetwork, Message: "network request failed"}
	if got := err.Error(); got != "Network: network request failed" {
		t.Errorf("unexpected message: %q", got)
	}

	err = &RequestError{
		Type:      ErrorTypeHookVeto,
		Message:   "request interrupted by before hook",
		Cause:     ErrInterrupted,
		RequestID: "abc123",
		Hook:      HookBefore,
	}
	got := err.Error()
	for _, want := range []string{"[abc123]", "HookVeto", "(hook before)"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestRequestErrorNil(t *testing.T) {
	var err *RequestError
	if err.Error() != "<nil>" {
		t.Errorf("nil error should render <nil>, got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("nil error should unwrap to nil")
	}
	if err.Is(ErrInterrupted) {
		t.Error("nil error matches nothing")
	}
}

func TestRequestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &RequestError{Type: ErrorTypeNetwork, Message: "network request failed", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestRequestErrorIsByType(t *testing.T) {
	veto := &RequestError{Type: ErrorTypeHookVeto, Message: "a"}
	otherVeto := &RequestError{Type: ErrorTypeHookVeto, Message: "b"}
	network := &RequestError{Type: ErrorTypeNetwork, Message: "c"}

	if !errors.Is(veto, otherVeto) {
		t.Error("same-type RequestErrors should match")
	}
	if errors.Is(veto, network) {
		t.Error("different-type RequestErrors should not match")
	}
}

func TestRequestErrorDebugInfo(t *testing.T) {
	err := &RequestError{
		Type:       ErrorTypeBadStatus,
		Message:    "unexpected response status",
		Method:     "DELETE",
		URL:        "/items/:id",
		StatusCode: 404,
		Hook:       "",
		Timestamp:  time.Now(),
		Duration:   42 * time.Millisecond,
	}

	info := err.DebugInfo()
	for _, want := range []string{"Error Type: BadStatus", "Method: DELETE", "URL: /items/:id", "Status Code: 404", "Duration:"} {
		if !strings.Contains(info, want) {
			t.Errorf("DebugInfo missing %q in:\n%s", want, info)
		}
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Code: 404}

	if !strings.Contains(err.Error(), "404") {
		t.Errorf("status should appear in message, got %q", err.Error())
	}
	if !errors.Is(err, ErrBadStatus) {
		t.Error("StatusError should unwrap to ErrBadStatus")
	}
	if StatusOf(err) != 404 {
		t.Errorf("StatusOf = %d, want 404", StatusOf(err))
	}
}

func TestStatusOfNonStatusError(t *testing.T) {
	if StatusOf(errors.New("boom")) != 0 {
		t.Error("non-status errors report 0")
	}
	if StatusOf(nil) != 0 {
		t.Error("nil reports 0")
	}
}

func TestIsIntercepted(t *testing.T) {
	veto := &RequestError{Type: ErrorTypeHookVeto, Cause: ErrInterrupted}
	if !IsIntercepted(veto) {
		t.Error("veto errors are interceptions")
	}
	if IsIntercepted(&StatusError{Code: 500}) {
		t.Error("status errors are not interceptions")
	}
}
