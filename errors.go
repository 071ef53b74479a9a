package hl7

import "fmt"

// ErrorCode is a stable, numeric identifier for a kind of failure raised by
// this package. Codes are stable across releases; message text is not.
type ErrorCode uint32

const (
	// ErrCodeMessageDataMustNotBeNull is raised when Parse or BuildFrom
	// receives an empty input.
	ErrCodeMessageDataMustNotBeNull ErrorCode = iota + 1
	// ErrCodeMessageDataIsTooShort is raised when input length is < 8.
	ErrCodeMessageDataIsTooShort
	// ErrCodeMessageDataMustStartWithMSH is raised when input does not begin
	// with "MSH".
	ErrCodeMessageDataMustStartWithMSH
	// ErrCodeSegmentIndexMustBeGreaterThanZero is raised when a child insert
	// (Insert, InsertValue) targets an index < 1, or a child delete targets
	// an index < 1 or beyond ValueCount. Child(i) lookups never raise it:
	// they return an element for any index.
	ErrCodeSegmentIndexMustBeGreaterThanZero
	// ErrCodeElementMoveForbidden is raised when moving MSH-1, MSH-2, a
	// segment's type code, or the Message itself.
	ErrCodeElementMoveForbidden
	// ErrCodeElementDeleteForbidden is raised when deleting the Message, a
	// protected position, or a bulk delete spans mixed ancestors.
	ErrCodeElementDeleteForbidden
	// ErrCodeElementMoveIndexBelowMinimum is raised when a Move target
	// index is < 1.
	ErrCodeElementMoveIndexBelowMinimum
	// ErrCodeFixedFieldMustNotBeMoved is reserved for a structural MSH
	// fixed-position violation distinct from Move; Move itself raises
	// ErrCodeElementMoveForbidden for MSH-1 and MSH-2, per the package's
	// error taxonomy.
	ErrCodeFixedFieldMustNotBeMoved
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeMessageDataMustNotBeNull:
		return "message_data_must_not_be_null"
	case ErrCodeMessageDataIsTooShort:
		return "message_data_is_too_short"
	case ErrCodeMessageDataMustStartWithMSH:
		return "message_data_must_start_with_msh"
	case ErrCodeSegmentIndexMustBeGreaterThanZero:
		return "segment_index_must_be_greater_than_zero"
	case ErrCodeElementMoveForbidden:
		return "element_move_forbidden"
	case ErrCodeElementDeleteForbidden:
		return "element_delete_forbidden"
	case ErrCodeElementMoveIndexBelowMinimum:
		return "element_move_index_below_minimum"
	case ErrCodeFixedFieldMustNotBeMoved:
		return "fixed_field_must_not_be_moved"
	default:
		return "unknown"
	}
}

// Error is the concrete error type raised by this package. Every failure
// kind listed in the ErrorCode constants above is surfaced as an *Error so
// callers can recover the stable Code without string matching.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("hl7: %s: %s", e.Code, e.Message)
}

// Is reports whether target is the sentinel error for e's Code, so callers
// may use errors.Is(err, hl7.ErrElementMoveForbidden) without a type assertion.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*Error)
	if !ok {
		return false
	}
	return sentinel.Code == e.Code
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is matching against a specific kind without caring
// about the message text.
var (
	ErrMessageDataMustNotBeNull = &Error{Code: ErrCodeMessageDataMustNotBeNull}
	ErrMessageDataIsTooShort = &Error{Code: ErrCodeMessageDataIsTooShort}
	ErrMessageDataMustStartWithMSH = &Error{Code: ErrCodeMessageDataMustStartWithMSH}
	ErrSegmentIndexMustBeGreaterThanZero = &Error{Code: ErrCodeSegmentIndexMustBeGreaterThanZero}
	ErrElementMoveForbidden = &Error{Code: ErrCodeElementMoveForbidden}
	ErrElementDeleteForbidden = &Error{Code: ErrCodeElementDeleteForbidden}
	ErrElementMoveIndexBelowMinimum = &Error{Code: ErrCodeElementMoveIndexBelowMinimum}
	ErrFixedFieldMustNotBeMoved = &Error{Code: ErrCodeFixedFieldMustNotBeMoved}
)
