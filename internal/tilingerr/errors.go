// Package tilingerr defines the structured error kinds returned across
// component boundaries (spec.md §7). Errors are typed values, not
// sentinel strings: callers switch on Kind rather than matching text.
package tilingerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error so callers can branch on failure mode
// without string matching.
type Kind int

const (
	// Unknown is the zero value; a non-nil Error should never carry it.
	Unknown Kind = iota
	// ChannelClosed indicates the actor's command queue or a query's
	// reply channel has been dropped.
	ChannelClosed
	// Timeout indicates a query did not complete within its budget.
	Timeout
	// NotFound indicates a missing workspace, window, or screen id.
	NotFound
	// InvalidArgument indicates command parameters outside accepted
	// ranges (an unknown layout tag, a resize dimension other than
	// width/height, a rejected config hot-reload).
	InvalidArgument
	// PlatformFailure indicates the platform adapter reported an
	// OS-level error; Code carries the platform-specific value.
	PlatformFailure
	// AccessibilityDenied indicates the OS refused an Accessibility
	// call. Fatal for the window operation it occurred in.
	AccessibilityDenied
)

func (k Kind) String() string {
	switch k {
	case ChannelClosed:
		return "channel_closed"
	case Timeout:
		return "timeout"
	case NotFound:
		return "not_found"
	case InvalidArgument:
		return "invalid_argument"
	case PlatformFailure:
		return "platform_failure"
	case AccessibilityDenied:
		return "accessibility_denied"
	default:
		return "unknown"
	}
}

// Error is the structured error value returned by every component.
// It wraps an optional cause, so errors.Is/errors.As work against the
// wrapped chain while callers needing the kind use KindOf (or errors.As
// with a *tilingerr.Error target variable).
type Error struct {
	Kind    Kind
	Op      string // component.operation that produced the error, e.g. "actor.FocusWindow"
	Message string
	Code    int // platform-specific code, set only for PlatformFailure
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs an Error with no wrapped cause.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap attaches kind/op/message to an underlying cause, preserving it
// for errors.Unwrap / errors.Is chains.
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, cause: cause}
}

// Platform builds a PlatformFailure carrying an OS-specific code.
func Platform(op, message string, code int, cause error) *Error {
	return &Error{Kind: PlatformFailure, Op: op, Message: message, Code: code, cause: cause}
}

// KindOf extracts the Kind from err if it is, or wraps, a *Error;
// returns Unknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
