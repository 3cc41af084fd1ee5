package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/vango-dev/navkit/pkg/router"
)

// Category represents the type of error.
type Category string

const (
	CategoryRouting Category = "routing"
	CategoryConfig  Category = "config"
	CategoryRemote  Category = "remote"
	CategoryCLI     Category = "cli"
)

// Location points at the place in a file an error refers to.
type Location struct {
	File string
	Line int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// NavError is a structured error with a code, suggestions and documentation.
type NavError struct {
	// Code is a unique error identifier (e.g., "N001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where in a file the error occurred, if known.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *NavError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *NavError) Unwrap() error {
	return e.Wrapped
}

// WithLocation records the file and line the error refers to. A line of 0
// means the whole file.
func (e *NavError) WithLocation(file string, line int) *NavError {
	e.Location = &Location{File: file, Line: line}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *NavError) WithSuggestion(s string) *NavError {
	e.Suggestion = s
	return e
}

// WithExample adds an example to the error.
func (e *NavError) WithExample(ex string) *NavError {
	e.Example = ex
	return e
}

// WithDetail replaces the detailed explanation.
func (e *NavError) WithDetail(d string) *NavError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *NavError) Wrap(err error) *NavError {
	e.Wrapped = err
	return e
}

// New creates a NavError from a registered error code.
func New(code string) *NavError {
	template, ok := registry[code]
	if !ok {
		return &NavError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &NavError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new NavError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *NavError {
	return &NavError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a NavError.
func FromError(err error, code string) *NavError {
	if err == nil {
		return nil
	}
	var ne *NavError
	if stderrors.As(err, &ne) {
		return ne
	}
	return New(code).Wrap(err)
}

// routerCodes maps router sentinels to error codes, in match order.
var routerCodes = []struct {
	target error
	code   string
}{
	{router.ErrNoMatch, "N001"},
	{router.ErrRedirectLoop, "N002"},
	{router.ErrUnknownRoute, "N003"},
	{router.ErrMissingParam, "N004"},
	{router.ErrInvalidRef, "N005"},
	{router.ErrAttached, "N006"},
	{router.ErrDetached, "N007"},
	{router.ErrDuplicateRoute, "N020"},
	{router.ErrInvalidPattern, "N021"},
	{router.ErrInvalidMode, "N022"},
}

// FromRouter wraps an error returned by package router in a NavError with
// the matching code. Errors from other sources become N099.
func FromRouter(err error) *NavError {
	if err == nil {
		return nil
	}
	var ne *NavError
	if stderrors.As(err, &ne) {
		return ne
	}
	for _, rc := range routerCodes {
		if stderrors.Is(err, rc.target) {
			return New(rc.code).Wrap(err)
		}
	}
	return New("N099").Wrap(err)
}

// Code returns the code of the first NavError in err's chain, or "".
func Code(err error) string {
	var ne *NavError
	if stderrors.As(err, &ne) {
		return ne.Code
	}
	return ""
}
