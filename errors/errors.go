// Package errors provides standardized error handling for the ontology
// store. It defines the error kinds surfaced by the public API, sentinel
// error variables, and helper functions for consistent error wrapping and
// classification across the module.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies errors for handling purposes at the API boundary.
type Kind int

const (
	// KindUnknown is the zero value for unclassified errors.
	KindUnknown Kind = iota
	// KindNotFound indicates a referenced individual, class, or relation
	// fact does not exist in the store.
	KindNotFound
	// KindUnknownClass indicates a class identifier did not resolve at
	// individual-creation time.
	KindUnknownClass
	// KindMalformedQuery indicates a syntactically invalid or semantically
	// inconsistent query pattern.
	KindMalformedQuery
	// KindIO indicates the storage path was inaccessible or its content
	// unreadable.
	KindIO
	// KindInvalid indicates invalid input or configuration outside the
	// specific kinds above.
	KindInvalid
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnknownClass:
		return "unknown_class"
	case KindMalformedQuery:
		return "malformed_query"
	case KindIO:
		return "io"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Store errors
	ErrNotFound     = errors.New("not found")
	ErrUnknownClass = errors.New("unknown class")

	// Query errors
	ErrMalformedQuery = errors.New("malformed query")

	// Storage errors
	ErrIO = errors.New("storage I/O failure")

	// Configuration and input errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidData   = errors.New("invalid data")
)

// kindSentinels maps each Kind to its sentinel error.
var kindSentinels = map[Kind]error{
	KindNotFound:       ErrNotFound,
	KindUnknownClass:   ErrUnknownClass,
	KindMalformedQuery: ErrMalformedQuery,
	KindIO:             ErrIO,
}

// KindOf returns the Kind of an error by unwrapping to a known sentinel.
// Errors that wrap no sentinel classify as KindUnknown, except that
// ErrInvalidConfig and ErrInvalidData classify as KindInvalid.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	if errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrInvalidData) {
		return KindInvalid
	}
	return KindUnknown
}

// IsNotFound checks if an error indicates a missing individual, class,
// or relation fact.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnknownClass checks if an error indicates an unresolved class identifier.
func IsUnknownClass(err error) bool {
	return errors.Is(err, ErrUnknownClass)
}

// IsMalformedQuery checks if an error indicates an invalid query pattern.
func IsMalformedQuery(err error) bool {
	return errors.Is(err, ErrMalformedQuery)
}

// IsIO checks if an error indicates a storage access failure.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// NotFound builds an ErrNotFound for a specific identifier with component
// context.
func NotFound(component, method, id string) error {
	return fmt.Errorf("%s.%s: %q: %w", component, method, id, ErrNotFound)
}

// UnknownClass builds an ErrUnknownClass for a specific class identifier
// with component context.
func UnknownClass(component, method, classID string) error {
	return fmt.Errorf("%s.%s: %q: %w", component, method, classID, ErrUnknownClass)
}

// MalformedQuery builds an ErrMalformedQuery with a reason.
func MalformedQuery(component, method, reason string) error {
	return fmt.Errorf("%s.%s: %s: %w", component, method, reason, ErrMalformedQuery)
}

// WrapIO wraps a filesystem or decode error as ErrIO with context.
// The original error remains reachable through Unwrap.
func WrapIO(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w: %w", component, method, action, ErrIO, err)
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers need only this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// New returns an error that formats as the given text.
// Re-exported so callers need only this package.
func New(text string) error {
	return errors.New(text)
}
