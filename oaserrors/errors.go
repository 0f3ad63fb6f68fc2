package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the error types below through errors.Is.
var (
	// ErrDecode indicates that no codec could decode the document.
	ErrDecode = errors.New("decode error")

	// ErrJSONDecode indicates the JSON codec failed to decode the document.
	ErrJSONDecode = errors.New("json decode error")

	// ErrYAMLDecode indicates the YAML codec failed to decode the document.
	ErrYAMLDecode = errors.New("yaml decode error")

	ErrReference         = errors.New("reference error")
	ErrCircularReference = errors.New("circular reference")
	ErrResourceLimit     = errors.New("resource limit exceeded")
	ErrConfig            = errors.New("configuration error")
)

// Codec format names carried by DecodeError.Format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DecodeError is a single codec's failure to decode a document.
// The failure may be a syntax error or a structural mismatch; both are
// reported the same way, with the codec's own message kept in Cause.
type DecodeError struct {
	// Format names the codec that failed ("json" or "yaml")
	Format string
	// Line is the line number reported by the codec (0 if unknown)
	Line int
	// Column is the column number reported by the codec (0 if unknown)
	Column int
	// Message adds context to the codec error, if any
	Message string
	// Cause is the codec's native error
	Cause error
}

func (e *DecodeError) Error() string {
	head := "decode error"
	if e.Format != "" {
		head = e.Format + " " + head
	}
	switch {
	case e.Line > 0 && e.Column > 0:
		head += fmt.Sprintf(" at line %d, column %d", e.Line, e.Column)
	case e.Line > 0:
		head += fmt.Sprintf(" at line %d", e.Line)
	}
	return joinMessage(head, e.Message, causeText(e.Cause))
}

// Detail returns the codec's native diagnostic text, or Message when there is
// no underlying cause.
func (e *DecodeError) Detail() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's codec sentinel.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrJSONDecode:
		return e.Format == FormatJSON
	case ErrYAMLDecode:
		return e.Format == FormatYAML
	}
	return false
}

// AggregateDecodeError is returned when every codec failed to decode a
// document. Attempts are kept in the order they ran, so Attempts[0] is the
// codec chosen by format detection.
type AggregateDecodeError struct {
	Attempts []*DecodeError
}

// Error names every codec tried, in order, followed by each codec's message.
func (e *AggregateDecodeError) Error() string {
	if len(e.Attempts) == 0 {
		return "decode error: no codecs attempted"
	}
	var b strings.Builder
	b.WriteString("decode error: tried ")
	b.WriteString(strings.Join(e.Order(), " then "))
	for _, a := range e.Attempts {
		b.WriteString("; ")
		b.WriteString(a.Error())
	}
	return b.String()
}

// Order returns the codec names in the order they were attempted.
func (e *AggregateDecodeError) Order() []string {
	order := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		order = append(order, a.Format)
	}
	return order
}

// First returns the name of the codec that was attempted first.
func (e *AggregateDecodeError) First() string {
	if len(e.Attempts) == 0 {
		return ""
	}
	return e.Attempts[0].Format
}

// Attempt returns the failure recorded for the given codec, or nil.
func (e *AggregateDecodeError) Attempt(format string) *DecodeError {
	for _, a := range e.Attempts {
		if a.Format == format {
			return a
		}
	}
	return nil
}

// Unwrap returns every attempt so errors.Is and errors.As see each codec failure.
func (e *AggregateDecodeError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a)
	}
	return errs
}

// Is reports whether target matches this error type.
func (e *AggregateDecodeError) Is(target error) bool {
	return target == ErrDecode
}

// ReferenceError is a $ref that could not be followed: a missing target, a
// cycle, or a ref that leaves the document.
type ReferenceError struct {
	Ref string
	// RefType is "local", "file" or "http".
	RefType    string
	IsCircular bool
	Message    string
	Cause      error
}

func (e *ReferenceError) Error() string {
	head := "reference error"
	if e.IsCircular {
		head = "circular reference"
	}
	return joinMessage(head, e.Ref, e.Message, causeText(e.Cause))
}

func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is matches ErrReference, and ErrCircularReference for cycles.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference || (target == ErrCircularReference && e.IsCircular)
}

// ResourceLimitError reports input over a configured maximum.
type ResourceLimitError struct {
	// ResourceType names the limit, e.g. "content_size".
	ResourceType string
	Limit        int64
	// Actual is zero when the size is not known up front.
	Actual  int64
	Message string
}

func (e *ResourceLimitError) Error() string {
	head := "resource limit exceeded"
	if e.ResourceType != "" {
		head += ": " + e.ResourceType
	}
	switch {
	case e.Limit > 0 && e.Actual > 0:
		head += fmt.Sprintf(" (limit: %d, actual: %d)", e.Limit, e.Actual)
	case e.Limit > 0:
		head += fmt.Sprintf(" (limit: %d)", e.Limit)
	}
	return joinMessage(head, e.Message)
}

func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError is an invalid option value or tool input.
type ConfigError struct {
	Option  string
	Value   any
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	head := "configuration error"
	if e.Option != "" {
		head += " for " + e.Option
	}
	if e.Value != nil {
		head += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return joinMessage(head, e.Message, causeText(e.Cause))
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// joinMessage appends the non-empty parts to head, separated by ": ".
func joinMessage(head string, parts ...string) string {
	var b strings.Builder
	b.WriteString(head)
	for _, p := range parts {
		if p != "" {
			b.WriteString(": ")
			b.WriteString(p)
		}
	}
	return b.String()
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
