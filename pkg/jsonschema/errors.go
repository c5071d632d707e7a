package jsonschema

import (
	"errors"
	"fmt"
)

// Code classifies a compilation failure.
type Code string

const (
	// CodeMalformedURI indicates a schema URI that does not follow the
	// expected path layout.
	CodeMalformedURI Code = "malformed-uri"
	// CodeVersionMismatch indicates a URI for a version other than the one
	// the generator is bound to.
	CodeVersionMismatch Code = "version-mismatch"
	// CodeUnknownKind indicates a URI addressing something other than
	// classes or objects.
	CodeUnknownKind Code = "unknown-kind"
	// CodeUnknownClass indicates a class name absent from the catalog.
	CodeUnknownClass Code = "unknown-class"
	// CodeUnknownObject indicates an object name absent from the catalog.
	CodeUnknownObject Code = "unknown-object"
	// CodeUnknownUID indicates a class uid no catalog entry carries.
	CodeUnknownUID Code = "unknown-uid"
	// CodeUnknownType indicates an attribute type missing from both the
	// base table and the catalog's type table.
	CodeUnknownType Code = "unknown-type"
	// CodeUnknownScalarBase indicates a type alias that never bottoms out
	// at a base type.
	CodeUnknownScalarBase Code = "unknown-scalar-base"
	// CodeUnsupportedEnum indicates an enum on a primitive that cannot
	// carry one, or a literal that does not parse as that primitive.
	CodeUnsupportedEnum Code = "unsupported-enum"
	// CodeConflictingConstraints indicates a type definition carrying both
	// max_len and range.
	CodeConflictingConstraints Code = "conflicting-constraints"
	// CodeMissingObjectType indicates an object-typed attribute with no
	// object_type to reference.
	CodeMissingObjectType Code = "missing-object-type"
	// CodeUnsupportedConstraint indicates a class or object constraint
	// kind the compiler does not implement.
	CodeUnsupportedConstraint Code = "unsupported-constraint"
)

// Error is a compilation failure. Message names the offending identifier
// and is surfaced verbatim; Code lets callers map failures onto their own
// reporting, for example HTTP status codes.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the classification of the *Error in err's chain, if any.
func CodeOf(err error) (Code, bool) {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code, true
	}
	return "", false
}
