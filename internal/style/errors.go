package style

import (
	"fmt"
	"strings"
)

// Style validation error codes (E200-E299)
const (
	// Document structure (E200-E209)
	ErrNotAStyle         = "E200" // root element is not cs:style
	ErrUnsupportedVer    = "E201" // unsupported version attribute
	ErrMissingInfo       = "E202" // info block required
	ErrMissingCitation   = "E203" // citation layout required
	ErrUnknownElement    = "E204" // unrecognized element
	ErrDuplicateMacro    = "E205" // macro name declared twice
	ErrBadAttributeValue = "E206" // attribute value outside its domain
	ErrMissingAttribute  = "E207" // required attribute absent

	// Macro analysis (E210-E219)
	ErrUndeclaredMacro = "E210" // text or sort key references unknown macro
	ErrMacroCycle      = "E211" // macro recursion

	// Feature gating (E220-E229)
	ErrFeatureGated = "E220" // construct needs a feature that is off

	// Inline locales (E230-E239)
	ErrBadInlineLocale = "E230" // cs:locale inside the style failed to parse
)

// Severity of an InvalidCsl diagnostic.
type Severity uint8

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// ByteRange is a half-open span into the style source.
type ByteRange struct {
	Start int64
	End   int64
}

// InvalidCsl is one diagnostic. The range points at the offending node
// so a formatter can underline it.
type InvalidCsl struct {
	Range    ByteRange
	Severity Severity
	Code     string
	Message  string
	Hint     string
}

// Error implements the error interface.
func (e InvalidCsl) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message)
}

// InvalidError carries every diagnostic found during compilation,
// warnings included. At least one has Error severity.
type InvalidError struct {
	Errors []InvalidCsl
}

// Error implements the error interface.
func (e *InvalidError) Error() string {
	n := 0
	for _, d := range e.Errors {
		if d.Severity == Error {
			n++
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "style has %d error(s)", n)
	for _, d := range e.Errors {
		sb.WriteString("\n  ")
		sb.WriteString(d.Error())
	}
	return sb.String()
}

// ParseError wraps an XML syntax failure that prevented any validation.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "style xml: " + e.Err.Error()
}

// Unwrap exposes the underlying xml error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// DependentStyleError marks a dependent style, which carries no layouts
// of its own and cannot be compiled directly.
type DependentStyleError struct {
	RequiredParent string
}

// Error implements the error interface.
func (e *DependentStyleError) Error() string {
	return "dependent style, requires parent " + e.RequiredParent
}
