package enumgo

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned when no selector in the chain produced a result
	// for the given text or value.
	ErrNoMatch = errors.New("no match")

	// ErrInvalidFlags is returned when a value carries bits outside the
	// domain's flag union.
	ErrInvalidFlags = errors.New("invalid flag combination")

	// ErrOutOfRange is returned when a numeric literal does not fit the
	// underlying width. It is distinct from a plain parse failure: the text
	// was numeric, just not representable.
	ErrOutOfRange = errors.New("value out of range")

	// ErrNotFlagDomain is returned when a flag operation is invoked on a
	// domain that was not declared as a flag domain.
	ErrNotFlagDomain = errors.New("not a flag domain")
)

// InvalidFlagsError reports the offending value and the declared flag union.
//
// It unwraps to ErrInvalidFlags.
type InvalidFlagsError struct {
	Value string
	Union string
}

func (e *InvalidFlagsError) Error() string {
	return fmt.Sprintf("invalid flag combination: %s has bits outside union %s", e.Value, e.Union)
}

func (e *InvalidFlagsError) Unwrap() error { return ErrInvalidFlags }

// OutOfRangeError reports numeric text that does not fit the underlying width.
//
// It unwraps to ErrOutOfRange.
type OutOfRangeError struct {
	Text    string
	BitSize int
	Signed  bool
}

func (e *OutOfRangeError) Error() string {
	kind := "unsigned"
	if e.Signed {
		kind = "signed"
	}
	return fmt.Sprintf("value out of range: %q does not fit in %d-bit %s", e.Text, e.BitSize, kind)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// ParseError reports text that no selector could resolve.
//
// It unwraps to ErrNoMatch.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no match: cannot parse %q", e.Text)
}

func (e *ParseError) Unwrap() error { return ErrNoMatch }
